package postgres

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/agricredit/internal/domain/port"
)

func TestNewAssessmentRepo(t *testing.T) {
	repo := NewAssessmentRepo(nil)
	assert.NotNil(t, repo)
	assert.Nil(t, repo.pool)
}

func TestFindByID_NonUUIDIsNotFound(t *testing.T) {
	repo := NewAssessmentRepo(nil)
	_, err := repo.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, port.ErrAssessmentNotFound)
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations, MigrationsDir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_create_assessments.up.sql")
	assert.Contains(t, names, "000001_create_assessments.down.sql")
}
