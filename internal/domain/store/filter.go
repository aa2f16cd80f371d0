package store

import (
	"strings"

	domainuser "github.com/BruksfildServices01/store-rating/internal/domain/user"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
)

type ListFilter struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Address string `form:"address"`
	SortBy  string `form:"sort"`
	Order   string `form:"order"`
}

var SortColumns = map[string]string{
	"name":       "s.name",
	"email":      "s.email",
	"address":    "s.address",
	"rating":     "average_rating",
	"created_at": "s.created_at",
}

// Normalize validates the filter. Without an explicit sort the newest
// stores come first.
func (f *ListFilter) Normalize() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)

	if f.SortBy == "" {
		f.SortBy = "created_at"
		if f.Order == "" {
			f.Order = "desc"
		}
	}
	if _, ok := SortColumns[f.SortBy]; !ok {
		return httperr.Validation("invalid_sort", "Unsupported sort field")
	}

	order, err := domainuser.NormalizeOrder(f.Order)
	if err != nil {
		return err
	}
	f.Order = order
	return nil
}
