package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/port"
)

var _ port.AssessmentRepository = (*AssessmentStore)(nil)

const keyPrefix = "agricredit:"

// AssessmentKey is the key an assessment snapshot is stored under.
func AssessmentKey(id string) string {
	return keyPrefix + "assessment:" + id
}

// FarmerIndexKey is the sorted set of a farmer's assessment IDs scored by
// creation time.
func FarmerIndexKey(farmerID string) string {
	return keyPrefix + "farmer:" + farmerID + ":assessments"
}

// AssessmentStore keeps assessment snapshots as JSON values in Redis.
type AssessmentStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewAssessmentStore creates a store. A zero ttl keeps entries forever.
func NewAssessmentStore(client redis.UniversalClient, ttl time.Duration) *AssessmentStore {
	return &AssessmentStore{client: client, ttl: ttl}
}

// Save writes the snapshot and indexes it under the farmer. An existing ID
// is left untouched.
func (s *AssessmentStore) Save(ctx context.Context, a model.Assessment) error {
	payload, err := json.Marshal(a.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}

	created, err := s.client.SetNX(ctx, AssessmentKey(a.ID()), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("store assessment: %w", err)
	}
	if !created {
		return nil
	}

	index := FarmerIndexKey(a.FarmerID())
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, index, redis.Z{Score: float64(a.CreatedAt().UnixMilli()), Member: a.ID()})
		if s.ttl > 0 {
			pipe.Expire(ctx, index, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("index assessment: %w", err)
	}
	return nil
}

func (s *AssessmentStore) FindByID(ctx context.Context, id string) (model.Assessment, error) {
	raw, err := s.client.Get(ctx, AssessmentKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Assessment{}, port.ErrAssessmentNotFound
	}
	if err != nil {
		return model.Assessment{}, fmt.Errorf("load assessment: %w", err)
	}
	return decode(raw)
}

// FindByFarmerID returns assessments newest first. Index entries whose value
// has expired are skipped.
func (s *AssessmentStore) FindByFarmerID(ctx context.Context, farmerID string, limit int) ([]model.Assessment, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := s.client.ZRevRange(ctx, FarmerIndexKey(farmerID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read farmer index: %w", err)
	}
	if len(ids) == 0 {
		return []model.Assessment{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = AssessmentKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load assessments: %w", err)
	}

	out := make([]model.Assessment, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		a, err := decode([]byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *AssessmentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func decode(raw []byte) (model.Assessment, error) {
	var snap model.AssessmentSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return model.Assessment{}, fmt.Errorf("unmarshal assessment: %w", err)
	}
	return snap.Restore(), nil
}
