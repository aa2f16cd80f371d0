package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/rating"
	"github.com/BruksfildServices01/store-rating/internal/dto"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

type RatingGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db, now: time.Now}
}

// Upsert relies on the (user_id, store_id) unique index: concurrent writes
// for the same pair resolve in the database and the last commit wins.
func (r *RatingGormRepository) Upsert(
	ctx context.Context,
	userID uint,
	storeID uint,
	value int,
) (*models.Rating, error) {

	now := r.now()
	row := models.Rating{
		UserID:    userID,
		StoreID:   storeID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"rating":     value,
				"updated_at": now,
			}),
		}).
		Create(&row).Error; err != nil {
		return nil, err
	}

	stored, err := r.FindForUser(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return stored, nil
}

func (r *RatingGormRepository) FindForUser(
	ctx context.Context,
	userID uint,
	storeID uint,
) (*models.Rating, error) {
	return first[models.Rating](r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID))
}

func (r *RatingGormRepository) ListForStore(
	ctx context.Context,
	storeID uint,
) ([]dto.RatingWithUser, error) {

	var rows []dto.RatingWithUser
	if err := r.db.WithContext(ctx).
		Table("ratings AS r").
		Select(`r.id, r.user_id, r.store_id, r.rating, r.created_at, r.updated_at,
			u.name AS user_name, u.email AS user_email`).
		Joins("JOIN users AS u ON u.id = r.user_id").
		Where("r.store_id = ?", storeID).
		Order("r.created_at DESC, r.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RatingGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&n).Error
	return n, err
}

// Compile-time check
var _ domain.Repository = (*RatingGormRepository)(nil)
