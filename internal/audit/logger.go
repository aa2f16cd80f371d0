package audit

import (
	"context"
	"encoding/json"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/audit"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

type Logger struct {
	repo domain.Repository
}

func New(repo domain.Repository) *Logger {
	return &Logger{repo: repo}
}

// Log persists one event. Metadata that cannot be encoded is dropped; the
// event itself is still written.
func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return l.repo.Create(ctx, &models.AuditLog{
		ActorID:  ev.ActorID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	})
}
