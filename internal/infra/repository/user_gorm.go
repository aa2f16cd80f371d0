package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/dto"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *UserGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {
	return first[models.User](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *UserGormRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {
	return first[models.User](r.db.WithContext(ctx).Where("email = ?", email))
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *UserGormRepository) Create(
	ctx context.Context,
	u *models.User,
) error {

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return httperr.Conflict("email_taken", "User with this email already exists")
		}
		return err
	}
	return nil
}

func (r *UserGormRepository) UpdatePassword(
	ctx context.Context,
	id uint,
	hash string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("user_not_found", "User not found")
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *UserGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.User, error) {

	q := r.db.WithContext(ctx).Model(&models.User{})

	if f.Name != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", likePattern(f.Name))
	}
	if f.Email != "" {
		q = q.Where("LOWER(email) LIKE ? ESCAPE '\\'", likePattern(f.Email))
	}
	if f.Address != "" {
		q = q.Where("LOWER(address) LIKE ? ESCAPE '\\'", likePattern(f.Address))
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}

	if col, ok := domain.SortColumns[f.SortBy]; ok {
		q = q.Order(col + " " + f.Order).Order("id " + f.Order)
	} else {
		q = q.Order("id ASC")
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// --------------------------------------------------
// Counters
// --------------------------------------------------

func (r *UserGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func (r *UserGormRepository) CountByRole(ctx context.Context) ([]dto.RoleCount, error) {
	var out []dto.RoleCount
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Order("role ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
