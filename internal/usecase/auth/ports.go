package auth

import "github.com/BruksfildServices01/store-rating/internal/models"

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type TokenIssuer interface {
	Issue(userID uint, email string, role models.Role) (string, error)
}

// Session is what a successful sign-up or login hands back to the client.
type Session struct {
	Token string
	User  *models.User
}
