package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drinkshop/auth-service/internal/models"
)

func TestStorage_CreateUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	tests := []struct {
		name    string
		user    models.User
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name: "successful creation",
			user: models.User{
				UID:          uuid.New().String(),
				Name:         "Test User",
				Email:        "new@example.com",
				PasswordHash: "hashedpassword",
				CreatedAt:    time.Now().UTC(),
			},
			setup: func(_ *testing.T, _ *TestDataFactory) {},
		},
		{
			name: "duplicate email",
			user: models.User{
				UID:          uuid.New().String(),
				Name:         "Second User",
				Email:        "taken@example.com",
				PasswordHash: "hashedpassword",
				CreatedAt:    time.Now().UTC(),
			},
			wantErr: ErrUserExists,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, uuid.New().String(), "First User", "taken@example.com", "hashedpassword")
			},
		},
	}

	factory := NewTestDataFactory(storage)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t, factory)

			err := storage.CreateUser(context.Background(), tt.user)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := storage.GetUser(context.Background(), tt.user.UID)
			require.NoError(t, err)
			assert.Equal(t, tt.user.Email, got.Email)
			assert.Nil(t, got.LastLogin)
		})
	}
}

func TestStorage_GetUserByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Name, data.Email, data.PasswordHash)

	t.Run("existing user includes password hash", func(t *testing.T) {
		got, err := storage.GetUserByEmail(context.Background(), data.Email)
		require.NoError(t, err)
		assert.Equal(t, data.UID, got.UID)
		assert.Equal(t, data.PasswordHash, got.PasswordHash)
	})

	t.Run("unknown email", func(t *testing.T) {
		got, err := storage.GetUserByEmail(context.Background(), "missing@example.com")
		require.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, got)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := storage.GetUserByEmail(ctx, data.Email)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestStorage_UpdateLastLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	data := GetTestUserData()
	factory.CreateUser(t, data.UID, data.Name, data.Email, data.PasswordHash)

	t.Run("existing user", func(t *testing.T) {
		loginTime := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

		err := storage.UpdateLastLogin(context.Background(), data.UID, loginTime)
		require.NoError(t, err)

		got, err := storage.GetUser(context.Background(), data.UID)
		require.NoError(t, err)
		require.NotNil(t, got.LastLogin)
		assert.True(t, got.LastLogin.Equal(loginTime))
	})

	t.Run("unknown user", func(t *testing.T) {
		err := storage.UpdateLastLogin(context.Background(), uuid.New().String(), time.Now().UTC())
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
