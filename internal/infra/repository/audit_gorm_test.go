package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/audit"
	"github.com/BruksfildServices01/store-rating/internal/models"
	"github.com/BruksfildServices01/store-rating/internal/testutil"
)

func TestAuditRepositoryListFiltersAndPages(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAuditGormRepository(db)
	ctx := context.Background()

	for _, action := range []string{"user_registered", "rating_submitted", "rating_submitted", "rating_submitted"} {
		require.NoError(t, repo.Create(ctx, &models.AuditLog{Action: action, Entity: "test"}))
	}

	logs, total, err := repo.List(ctx, domain.ListFilter{Action: "rating_submitted", Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, logs, 2)

	logs, total, err = repo.List(ctx, domain.ListFilter{Action: "rating_submitted", Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, logs, 1)

	logs, total, err = repo.List(ctx, domain.ListFilter{Entity: "nothing", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, logs)
}
