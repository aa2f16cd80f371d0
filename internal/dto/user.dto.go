package dto

import "github.com/BruksfildServices01/store-rating/internal/models"

// UserDetail is a user as seen by an admin: the owned store is attached for
// store owners and null otherwise.
type UserDetail struct {
	models.User
	Store *StoreWithRating `json:"store"`
}

type RoleCount struct {
	Role  models.Role `json:"role"`
	Count int64       `json:"count"`
}
