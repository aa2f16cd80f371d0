package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/store-rating/internal/models"
)

type ListFilter struct {
	Action string
	Entity string
	From   *time.Time
	// To is exclusive.
	To *time.Time

	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, filter ListFilter) ([]models.AuditLog, int64, error)
}
