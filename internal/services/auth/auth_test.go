package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/drinkshop/auth-service/internal/lib/jwt"
	"github.com/drinkshop/auth-service/internal/lib/password"
	"github.com/drinkshop/auth-service/internal/models"
	services "github.com/drinkshop/auth-service/internal/services/auth"
	"github.com/drinkshop/auth-service/internal/storage"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateLastLogin(ctx context.Context, userUID string, loginTime time.Time) error {
	args := m.Called(ctx, userUID, loginTime)
	return args.Error(0)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userUID string) (string, error) {
	args := m.Called(userUID)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.SessionClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.SessionClaims), args.Error(1)
}

// Мок для ProfileCache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Мок для RegistrationNotifier
type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) PublishUserRegistered(event models.UserRegisteredEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock, n *NotifierMock)
		wantToken  string
		wantErr    error
	}{
		{
			name: "successful registration",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock, n *NotifierMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "a@x.com" &&
						user.Name == "A" &&
						user.UID != "" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "Abcdef1"
				})).Return(nil).Once()
				j.On("GenerateToken", mock.Anything).Return("signed-token", nil).Once()
				n.On("PublishUserRegistered", mock.MatchedBy(func(e models.UserRegisteredEvent) bool {
					return e.Email == "a@x.com" && e.UserUID != ""
				})).Return(nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name: "duplicate email",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock, n *NotifierMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return(storage.ErrUserExists).Once()
			},
			wantErr: services.ErrEmailTaken,
		},
		{
			name: "notifier failure does not fail registration",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock, n *NotifierMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).Return(nil).Once()
				j.On("GenerateToken", mock.Anything).Return("signed-token", nil).Once()
				n.On("PublishUserRegistered", mock.Anything).
					Return(errors.New("broker is down")).Once()
			},
			wantToken: "signed-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			notifierMock := new(NotifierMock)
			tt.setupMocks(repoMock, jwtMock, notifierMock)

			svc := services.NewAuthService(repoMock, jwtMock, nil, notifierMock, newNoopLogger())

			user, token, err := svc.Register(context.Background(), "A", "a@x.com", "Abcdef1")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, "a@x.com", user.Email)
				assert.Nil(t, user.LastLogin)
			}

			repoMock.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
			notifierMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("Abcdef1")
	require.NoError(t, err)

	storedUser := func() *models.User {
		return &models.User{
			UID:          "uid-1",
			Name:         "A",
			Email:        "a@x.com",
			PasswordHash: hash,
		}
	}

	t.Run("successful login updates last login", func(t *testing.T) {
		repoMock := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		cacheMock := new(CacheMock)

		repoMock.On("GetUserByEmail", mock.Anything, "a@x.com").Return(storedUser(), nil).Once()
		repoMock.On("UpdateLastLogin", mock.Anything, "uid-1", mock.Anything).Return(nil).Once()
		cacheMock.On("Invalidate", mock.Anything, "profile:uid-1").Return(nil).Once()
		jwtMock.On("GenerateToken", "uid-1").Return("signed-token", nil).Once()

		svc := services.NewAuthService(repoMock, jwtMock, cacheMock, nil, newNoopLogger())

		user, token, err := svc.Login(context.Background(), "a@x.com", "Abcdef1")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		require.NotNil(t, user.LastLogin)
		assert.WithinDuration(t, time.Now().UTC(), *user.LastLogin, time.Second)

		repoMock.AssertExpectations(t)
		jwtMock.AssertExpectations(t)
		cacheMock.AssertExpectations(t)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		repoMock := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)

		repoMock.On("GetUserByEmail", mock.Anything, "missing@x.com").
			Return(nil, storage.ErrUserNotFound).Once()
		repoMock.On("GetUserByEmail", mock.Anything, "a@x.com").Return(storedUser(), nil).Once()

		svc := services.NewAuthService(repoMock, jwtMock, nil, nil, newNoopLogger())

		_, _, errMissing := svc.Login(context.Background(), "missing@x.com", "Abcdef1")
		_, _, errWrongPass := svc.Login(context.Background(), "a@x.com", "wrong")

		require.ErrorIs(t, errMissing, services.ErrInvalidCredentials)
		require.ErrorIs(t, errWrongPass, services.ErrInvalidCredentials)
		assert.Equal(t, errMissing.Error(), errWrongPass.Error())

		repoMock.AssertExpectations(t)
	})
}

func TestAuthService_GetProfile(t *testing.T) {
	t.Run("cache miss loads user and fills cache", func(t *testing.T) {
		repoMock := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		cacheMock := new(CacheMock)

		user := &models.User{UID: "uid-1", Name: "A", Email: "a@x.com"}
		cacheMock.On("Get", mock.Anything, "profile:uid-1", mock.Anything).Return(false, nil).Once()
		repoMock.On("GetUser", mock.Anything, "uid-1").Return(user, nil).Once()
		cacheMock.On("Set", mock.Anything, "profile:uid-1", user, mock.Anything).Return(nil).Once()

		svc := services.NewAuthService(repoMock, jwtMock, cacheMock, nil, newNoopLogger())

		got, err := svc.GetProfile(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", got.Email)

		repoMock.AssertExpectations(t)
		cacheMock.AssertExpectations(t)
	})

	t.Run("deleted user yields ErrUserNotFound", func(t *testing.T) {
		repoMock := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)

		repoMock.On("GetUser", mock.Anything, "uid-gone").
			Return(nil, storage.ErrUserNotFound).Once()

		svc := services.NewAuthService(repoMock, jwtMock, nil, nil, newNoopLogger())

		got, err := svc.GetProfile(context.Background(), "uid-gone")
		require.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, got)

		repoMock.AssertExpectations(t)
	})
}
