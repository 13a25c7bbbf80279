package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.Error(t, h.Compare(hash, "wrong"))
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("secret", 7*24*time.Hour)
	user := &entities.User{ID: "user-1", Email: "guest@example.com", Role: entities.RoleReceptionist}

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	actor, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, entities.Actor{UserID: "user-1", Email: "guest@example.com", Role: entities.RoleReceptionist}, actor)
}

func TestJWTIssuer_RejectsExpiredToken(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.Issue(&entities.User{ID: "user-1", Role: entities.RoleUser})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestJWTIssuer_RejectsForeignSignature(t *testing.T) {
	token, err := NewJWTIssuer("other", time.Hour).Issue(&entities.User{ID: "user-1", Role: entities.RoleAdmin})
	require.NoError(t, err)

	_, err = NewJWTIssuer("secret", time.Hour).Parse(token)
	assert.Error(t, err)
}
