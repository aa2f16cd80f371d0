package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/store"
	"github.com/BruksfildServices01/store-rating/internal/dto"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

// storeAggregateColumns selects a store with its rating aggregates. The
// average is cast so both dialects scan it as a float and defaults to 0.
const storeAggregateColumns = `s.id, s.name, s.email, s.address, s.owner_id, s.created_at,
	CAST(COALESCE(AVG(r.rating), 0) AS FLOAT) AS average_rating,
	COUNT(r.id) AS total_ratings`

type StoreGormRepository struct {
	db *gorm.DB
}

func NewStoreGormRepository(db *gorm.DB) *StoreGormRepository {
	return &StoreGormRepository{db: db}
}

func (r *StoreGormRepository) withRatings(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("stores AS s").
		Select(storeAggregateColumns).
		Joins("LEFT JOIN ratings AS r ON r.store_id = s.id").
		Group("s.id")
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *StoreGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]dto.StoreWithRating, error) {

	q := r.withRatings(ctx)

	if f.Name != "" {
		q = q.Where("LOWER(s.name) LIKE ? ESCAPE '\\'", likePattern(f.Name))
	}
	if f.Email != "" {
		q = q.Where("LOWER(s.email) LIKE ? ESCAPE '\\'", likePattern(f.Email))
	}
	if f.Address != "" {
		q = q.Where("LOWER(s.address) LIKE ? ESCAPE '\\'", likePattern(f.Address))
	}

	if col, ok := domain.SortColumns[f.SortBy]; ok {
		q = q.Order(col + " " + f.Order).Order("s.id " + f.Order)
	} else {
		q = q.Order("s.id ASC")
	}

	var stores []dto.StoreWithRating
	if err := q.Scan(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *StoreGormRepository) FindWithRating(
	ctx context.Context,
	id uint,
) (*dto.StoreWithRating, error) {
	return r.findOne(r.withRatings(ctx).Where("s.id = ?", id))
}

func (r *StoreGormRepository) FindByOwnerWithRating(
	ctx context.Context,
	ownerID uint,
) (*dto.StoreWithRating, error) {
	return r.findOne(r.withRatings(ctx).Where("s.owner_id = ?", ownerID))
}

func (r *StoreGormRepository) findOne(q *gorm.DB) (*dto.StoreWithRating, error) {
	var rows []dto.StoreWithRating
	if err := q.Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *StoreGormRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", id).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *StoreGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&n).Error
	return n, err
}

// --------------------------------------------------
// Creation (transactional)
// --------------------------------------------------

func (r *StoreGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.TxRepository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&storeTx{db: tx})
	})
}

type storeTx struct {
	db *gorm.DB
}

// LockOwnerByEmail takes a row lock on postgres. sqlite has no row locks
// and serialises writers instead.
func (t *storeTx) LockOwnerByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {
	return first[models.User](t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("email = ?", email))
}

func (t *storeTx) OwnerHasStore(ctx context.Context, ownerID uint) (bool, error) {
	var n int64
	if err := t.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("owner_id = ?", ownerID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (t *storeTx) PromoteToStoreOwner(ctx context.Context, userID uint) error {
	return t.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", models.RoleStoreOwner).Error
}

func (t *storeTx) CreateStore(ctx context.Context, s *models.Store) error {
	if err := t.db.WithContext(ctx).Create(s).Error; err != nil {
		if isDuplicateKey(err) {
			return httperr.Conflict("owner_has_store", "This owner already has a store")
		}
		return err
	}
	return nil
}

// Compile-time check
var (
	_ domain.Repository   = (*StoreGormRepository)(nil)
	_ domain.TxRepository = (*storeTx)(nil)
)
