package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/dto"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

type actorKey struct{}

// WithActor stores the authenticated caller on ctx
func WithActor(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller stored by RequireAuth
func ActorFromContext(ctx context.Context) (entities.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(entities.Actor)
	return actor, ok
}

// UserFinder loads the current state of a token's subject
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
}

// Authenticator verifies bearer tokens and enforces roles per route. The
// token only identifies the caller; the role always comes from the store.
type Authenticator struct {
	tokens providers.TokenIssuer
	users  UserFinder
}

// NewAuthenticator creates an Authenticator backed by tokens and users
func NewAuthenticator(tokens providers.TokenIssuer, users UserFinder) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// RequireAuth rejects requests without a valid bearer token with 401.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			writeDenied(w, http.StatusUnauthorized, "Authentication is required")
			return
		}

		logger := observability.LoggerFromContext(r.Context())
		claimed, err := a.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			logger.Debug().Err(err).Msg("Rejected bearer token")
			writeDenied(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := a.users.GetByID(r.Context(), claimed.UserID)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				logger.Debug().Str("user_id", claimed.UserID).Msg("Token subject no longer exists")
				writeDenied(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			logger.Error().Err(err).Str("user_id", claimed.UserID).Msg("Failed to load token subject")
			writeDenied(w, http.StatusInternalServerError, "Error authenticating request")
			return
		}

		actor := entities.Actor{UserID: user.ID, Email: user.Email, Role: user.Role}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// RequireRole authenticates the request and answers 403 unless the caller
// holds one of roles.
func (a *Authenticator) RequireRole(roles ...entities.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, _ := ActorFromContext(r.Context())
			if !actor.HasRole(roles...) {
				writeDenied(w, http.StatusForbidden, "You do not have permission to access this resource")
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func writeDenied(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.Response{StatusCode: status, Message: message})
}
