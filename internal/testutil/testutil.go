// Package testutil holds fixtures shared by package tests: an in-memory
// database with the production schema and helpers that seed it.
package testutil

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/store-rating/internal/db"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

const (
	DefaultPassword = "Secret@1"
	DefaultAddress  = "221B Baker Street, London"
)

var dbSeq atomic.Int64

// NewDB returns a private in-memory sqlite database with every table
// migrated. It is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

var hashCache sync.Map

// HashPassword hashes with the minimum bcrypt cost to keep tests fast.
func HashPassword(t testing.TB, password string) string {
	t.Helper()
	if h, ok := hashCache.Load(password); ok {
		return h.(string)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashCache.Store(password, string(h))
	return string(h)
}

// CreateUser inserts a user whose password is DefaultPassword. The name is
// padded so it always satisfies the length rule.
func CreateUser(t testing.TB, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	name := "Test User " + email
	if len(name) < 20 {
		name += strings.Repeat(".", 20-len(name))
	}
	if len(name) > 60 {
		name = name[:60]
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: HashPassword(t, DefaultPassword),
		Address:      DefaultAddress,
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateStore(t testing.TB, db *gorm.DB, name string, owner *models.User) *models.Store {
	t.Helper()

	s := &models.Store{
		Name:    name,
		Email:   "contact." + owner.Email,
		Address: DefaultAddress,
		OwnerID: owner.ID,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func CreateRating(t testing.TB, db *gorm.DB, user *models.User, store *models.Store, value int) *models.Rating {
	t.Helper()

	r := &models.Rating{UserID: user.ID, StoreID: store.ID, Value: value}
	require.NoError(t, db.Create(r).Error)
	return r
}
