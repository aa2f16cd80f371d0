// Package seed loads the demo accounts and store. Running it again leaves
// existing rows untouched except the owner's role.
package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/store-rating/internal/models"
)

type Hasher interface {
	Hash(password string) (string, error)
}

// Account is a seeded login printed for local testing.
type Account struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     models.Role
}

var Accounts = []Account{
	{
		Name:     "System Administrator User",
		Email:    "admin@storerating.com",
		Password: "Admin@123",
		Address:  "123 Admin Street, City",
		Role:     models.RoleAdmin,
	},
	{
		Name:     "John Doe Regular User",
		Email:    "john@example.com",
		Password: "User@123",
		Address:  "456 User Avenue, City",
		Role:     models.RoleUser,
	},
	{
		Name:     "Jane Smith Normal User",
		Email:    "jane@example.com",
		Password: "User@123",
		Address:  "789 Customer Road, City",
		Role:     models.RoleUser,
	},
	{
		Name:     "Store Owner Person Name",
		Email:    "owner@store.com",
		Password: "Owner@123",
		Address:  "321 Store Street, City",
		Role:     models.RoleStoreOwner,
	},
}

var DemoStore = models.Store{
	Name:    "Best Electronics Store",
	Email:   "store@electronics.com",
	Address: "999 Shopping Mall, City Center",
}

const ownerEmail = "owner@store.com"

// Run inserts the demo data in a single transaction.
func Run(ctx context.Context, db *gorm.DB, hasher Hasher) error {
	hashes := make(map[string]string, len(Accounts))
	for _, a := range Accounts {
		if _, ok := hashes[a.Password]; ok {
			continue
		}
		h, err := hasher.Hash(a.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", a.Email, err)
		}
		hashes[a.Password] = h
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range Accounts {
			u := models.User{
				Name:         a.Name,
				Email:        a.Email,
				PasswordHash: hashes[a.Password],
				Address:      a.Address,
				Role:         a.Role,
			}

			onConflict := clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoNothing: true,
			}
			if a.Email == ownerEmail {
				onConflict = clause.OnConflict{
					Columns:   []clause.Column{{Name: "email"}},
					DoUpdates: clause.Assignments(map[string]any{"role": models.RoleStoreOwner}),
				}
			}

			if err := tx.Clauses(onConflict).Create(&u).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", a.Email, err)
			}
		}

		var owner models.User
		if err := tx.Where("email = ?", ownerEmail).First(&owner).Error; err != nil {
			return fmt.Errorf("load store owner: %w", err)
		}

		store := DemoStore
		store.OwnerID = owner.ID

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&store).Error; err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
		return nil
	})
}
