package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/adapters/database"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

var userRowColumns = []string{"id", "name", "email", "password", "phone_number", "role", "created_at", "updated_at"}

func TestUserAdapter_Create(t *testing.T) {
	user := &entities.User{
		ID:        "user-1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Password:  "hash",
		Role:      entities.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	t.Run("successfully creates a user", func(t *testing.T) {
		// Arrange
		client, mock := newMockClient(t)
		adapter := database.NewUserAdapter(client)
		mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := adapter.Create(context.Background(), user)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict on duplicate email", func(t *testing.T) {
		// Arrange
		client, mock := newMockClient(t)
		adapter := database.NewUserAdapter(client)
		mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := adapter.Create(context.Background(), user)

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		assert.Contains(t, err.Error(), "ada@example.com is already registered")
	})
}

func TestUserAdapter_GetByEmail(t *testing.T) {
	t.Run("successfully retrieves a user", func(t *testing.T) {
		// Arrange
		client, mock := newMockClient(t)
		adapter := database.NewUserAdapter(client)
		now := time.Now()
		mock.ExpectQuery(`SELECT .* FROM "users" WHERE \("email" = 'ada@example.com'\)`).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow("user-1", "Ada", "ada@example.com", "hash", nil, "ADMIN", now, now))

		// Act
		user, err := adapter.GetByEmail(context.Background(), "ada@example.com")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, entities.RoleAdmin, user.Role)
		assert.Empty(t, user.PhoneNumber)
	})

	t.Run("returns not found when no row matches", func(t *testing.T) {
		// Arrange
		client, mock := newMockClient(t)
		adapter := database.NewUserAdapter(client)
		mock.ExpectQuery(`SELECT .* FROM "users"`).WillReturnRows(sqlmock.NewRows(userRowColumns))

		// Act
		user, err := adapter.GetByEmail(context.Background(), "missing@example.com")

		// Assert
		require.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestUserAdapter_CountByRole(t *testing.T) {
	// Arrange
	client, mock := newMockClient(t)
	adapter := database.NewUserAdapter(client)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "users" WHERE \("role" = 'ADMIN'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	// Act
	count, err := adapter.CountByRole(context.Background(), entities.RoleAdmin)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUserAdapter_Update(t *testing.T) {
	t.Run("returns not found when no row is affected", func(t *testing.T) {
		// Arrange
		client, mock := newMockClient(t)
		adapter := database.NewUserAdapter(client)
		mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := adapter.Update(context.Background(), &entities.User{ID: "missing", Role: entities.RoleUser})

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("returns conflict when the email is taken", func(t *testing.T) {
		// Arrange
		client, mock := newMockClient(t)
		adapter := database.NewUserAdapter(client)
		mock.ExpectExec(`UPDATE "users"`).WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := adapter.Update(context.Background(), &entities.User{ID: "user-1", Email: "taken@example.com"})

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})
}
