package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_ratings_user_store" json:"user_id"`
	StoreID uint `gorm:"not null;uniqueIndex:idx_ratings_user_store;index" json:"store_id"`
	Value   int  `gorm:"column:rating;not null;check:chk_ratings_range,rating >= 1 AND rating <= 5" json:"rating"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Store *Store `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
