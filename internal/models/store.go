package models

import "time"

type Store struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:60;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Address string `gorm:"size:400;not null" json:"address"`

	// One store per owner; the unique index backs the check done at creation.
	OwnerID uint  `gorm:"not null;uniqueIndex" json:"owner_id"`
	Owner   *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
