package dto

import "time"

// StoreWithRating is a store row plus its aggregates computed at read time.
type StoreWithRating struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       uint      `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int64     `json:"total_ratings"`
}

// StoreSummary is the store block of the store-owner dashboard.
type StoreSummary struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

func (s StoreWithRating) Summary() StoreSummary {
	return StoreSummary{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Address:       s.Address,
		AverageRating: s.AverageRating,
		TotalRatings:  s.TotalRatings,
	}
}

// UserStore is one row of the user dashboard: a store, its aggregates and
// the caller's own rating, nil when the caller has not rated it.
type UserStore struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
	UserRating    *int    `json:"user_rating"`
}
