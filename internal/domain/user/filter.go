package user

import (
	"strings"

	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

// ListFilter narrows the admin user listing. Text fields match as
// case-insensitive substrings; Role matches exactly.
type ListFilter struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Address string `form:"address"`
	Role    string `form:"role"`
	SortBy  string `form:"sort"`
	Order   string `form:"order"`
}

var SortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"address":    "address",
	"role":       "role",
	"created_at": "created_at",
}

// Normalize validates the filter. Without an explicit sort the newest
// users come first.
func (f *ListFilter) Normalize() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)
	f.Role = strings.TrimSpace(f.Role)

	if f.SortBy == "" {
		f.SortBy = "created_at"
		if f.Order == "" {
			f.Order = "desc"
		}
	}

	if f.Role != "" {
		if _, err := models.ParseRole(f.Role); err != nil {
			return httperr.Validation("invalid_role", "Role must be one of user, admin, store_owner")
		}
	}
	if _, ok := SortColumns[f.SortBy]; !ok {
		return httperr.Validation("invalid_sort", "Unsupported sort field")
	}
	order, err := NormalizeOrder(f.Order)
	if err != nil {
		return err
	}
	f.Order = order
	return nil
}

// NormalizeOrder maps an optional asc/desc parameter to SQL.
func NormalizeOrder(order string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "asc":
		return "ASC", nil
	case "desc":
		return "DESC", nil
	default:
		return "", httperr.Validation("invalid_order", "Order must be asc or desc")
	}
}
