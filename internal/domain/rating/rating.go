package rating

import (
	"math"

	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

// Value checks a submitted rating. JSON numbers arrive as float64 so
// fractional values can be told apart from integers.
func Value(v float64) (int, error) {
	if v != math.Trunc(v) || v < models.MinRating || v > models.MaxRating {
		return 0, httperr.Validation("invalid_rating", "Rating must be an integer between 1 and 5")
	}
	return int(v), nil
}

// CanRate reports whether role may submit and read its own ratings.
func CanRate(role models.Role) bool {
	return role == models.RoleUser || role == models.RoleAdmin
}
