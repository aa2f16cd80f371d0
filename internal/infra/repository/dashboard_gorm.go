package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/dashboard"
	"github.com/BruksfildServices01/store-rating/internal/dto"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

// StoresForUser joins ratings twice: r for the aggregates, ur for the
// caller's own row. The unique (user_id, store_id) index keeps ur to at
// most one row per store.
func (r *DashboardGormRepository) StoresForUser(
	ctx context.Context,
	userID uint,
) ([]dto.UserStore, error) {

	var rows []dto.UserStore
	if err := r.db.WithContext(ctx).
		Table("stores AS s").
		Select(`s.id, s.name, s.email, s.address,
			CAST(COALESCE(AVG(r.rating), 0) AS FLOAT) AS average_rating,
			COUNT(DISTINCT r.id) AS total_ratings,
			ur.rating AS user_rating`).
		Joins("LEFT JOIN ratings AS r ON r.store_id = s.id").
		Joins("LEFT JOIN ratings AS ur ON ur.store_id = s.id AND ur.user_id = ?", userID).
		Group("s.id, ur.rating").
		Order("s.name ASC, s.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*DashboardGormRepository)(nil)
