package providers

import (
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues and verifies access tokens
type TokenIssuer interface {
	Issue(user *entities.User) (string, error)
	Parse(token string) (entities.Actor, error)
	TTL() time.Duration
}
