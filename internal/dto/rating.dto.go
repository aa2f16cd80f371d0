package dto

import "time"

// RatingWithUser is a rating joined with the name and email of its author.
type RatingWithUser struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	StoreID   uint      `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
}

type RatingCount struct {
	Count int64 `json:"count"`
}
