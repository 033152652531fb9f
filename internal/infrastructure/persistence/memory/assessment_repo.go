package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/port"
)

var _ port.AssessmentRepository = (*AssessmentRepo)(nil)

// AssessmentRepo keeps assessments in process memory.
type AssessmentRepo struct {
	mu       sync.RWMutex
	byID     map[string]model.Assessment
	byFarmer map[string][]string
}

func NewAssessmentRepo() *AssessmentRepo {
	return &AssessmentRepo{
		byID:     make(map[string]model.Assessment),
		byFarmer: make(map[string][]string),
	}
}

// Save stores the assessment without its pending events. Assessments are
// immutable, so saving an existing ID again is a no-op.
func (r *AssessmentRepo) Save(_ context.Context, a model.Assessment) error {
	if a.ID() == "" {
		return fmt.Errorf("save assessment: empty id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID()]; exists {
		return nil
	}
	r.byFarmer[a.FarmerID()] = append(r.byFarmer[a.FarmerID()], a.ID())
	r.byID[a.ID()] = a.ClearEvents()
	return nil
}

func (r *AssessmentRepo) FindByID(_ context.Context, id string) (model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return model.Assessment{}, port.ErrAssessmentNotFound
	}
	return a, nil
}

func (r *AssessmentRepo) FindByFarmerID(_ context.Context, farmerID string, limit int) ([]model.Assessment, error) {
	r.mu.RLock()
	ids := r.byFarmer[farmerID]
	out := make([]model.Assessment, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	r.mu.RUnlock()

	// Insertion order breaks ties between identical timestamps, newest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AssessmentRepo) Ping(context.Context) error { return nil }
