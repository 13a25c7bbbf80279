package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

const (
	msgInvalidRole   = "Invalid role. Only ADMIN, USER, and RECEPTIONIST roles are allowed."
	msgTooManyAdmins = "Maximum 2 ADMIN users allowed. Cannot create more administrators."
)

// RegisterInput holds the fields of a new account
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Role        string
}

// LoginResult is a freshly issued token with its holder
type LoginResult struct {
	Token          string
	ExpirationTime string
	User           *entities.User
}

// AuthService handles registration and login
type AuthService struct {
	users  repositories.UserRepository
	hasher providers.PasswordHasher
	tokens providers.TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, hasher providers.PasswordHasher, tokens providers.TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates an account. Without an explicit role the first two
// accounts become ADMIN and later ones USER.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entities.User, error) {
	role, err := s.resolveRole(ctx, in.Role)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError(fmt.Sprintf("%s is already registered", in.Email))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		Password:    hash,
		PhoneNumber: in.PhoneNumber,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return user, nil
}

func (s *AuthService) resolveRole(ctx context.Context, requested string) (entities.Role, error) {
	if strings.TrimSpace(requested) == "" {
		count, err := s.users.Count(ctx)
		if err != nil {
			return "", err
		}
		return entities.DefaultRole(count), nil
	}

	role, ok := entities.ParseRole(requested)
	if !ok {
		return "", apperrors.NewValidationError(msgInvalidRole)
	}
	if role == entities.RoleAdmin {
		admins, err := s.users.CountByRole(ctx, entities.RoleAdmin)
		if err != nil {
			return "", err
		}
		if admins >= entities.MaxAdmins {
			return "", apperrors.NewValidationError(msgTooManyAdmins)
		}
	}
	return role, nil
}

// Login verifies credentials and issues a token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(user.Password, password); err != nil {
		return nil, apperrors.NewValidationError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	return &LoginResult{
		Token:          token,
		ExpirationTime: describeTTL(s.tokens.TTL()),
		User:           user,
	}, nil
}

// describeTTL renders whole days as "7 Days"
func describeTTL(ttl time.Duration) string {
	day := 24 * time.Hour
	if ttl >= day && ttl%day == 0 {
		return fmt.Sprintf("%d Days", ttl/day)
	}
	return ttl.String()
}
