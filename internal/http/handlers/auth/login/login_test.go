package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/drinkshop/auth-service/internal/models"
	services "github.com/drinkshop/auth-service/internal/services/auth"
)

// Мок сервиса с методом Login
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	args := m.Called(ctx, email, rawPassword)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, authMock)

	lastLogin := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	loggedInUser := &models.User{
		UID:       "uid-1",
		Name:      "User One",
		Email:     "user1@example.com",
		LastLogin: &lastLogin,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockUser       *models.User
		mockToken      string
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantSuccess    bool
		wantMessage    string
		wantToken      string
	}{
		{
			name: "valid login",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "Password1",
			},
			mockUser:       loggedInUser,
			mockToken:      "signed-token",
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantSuccess:    true,
			wantMessage:    "Login successful",
			wantToken:      "signed-token",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantSuccess:    false,
			wantMessage:    "Invalid request body",
		},
		{
			name: "validation error - missing password",
			requestBody: Request{
				Email: "user1@example.com",
			},
			wantStatusCode: http.StatusBadRequest,
			wantSuccess:    false,
			wantMessage:    "field Password is a required field",
		},
		{
			name: "invalid credentials",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "wrong",
			},
			mockErr:        services.ErrInvalidCredentials,
			callsService:   true,
			wantStatusCode: http.StatusUnauthorized,
			wantSuccess:    false,
			wantMessage:    "Invalid email or password",
		},
		{
			name: "storage error",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "Password1",
			},
			mockErr:        assert.AnError,
			callsService:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantSuccess:    false,
			wantMessage:    "Failed to log in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock.ExpectedCalls = nil
			authMock.Calls = nil

			if tt.callsService {
				authMock.On("Login", mock.Anything,
					mock.Anything,
					mock.Anything,
				).Return(tt.mockUser, tt.mockToken, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantSuccess, got["success"])
			assert.Equal(t, tt.wantMessage, got["message"])

			if tt.wantToken != "" {
				assert.Equal(t, tt.wantToken, got["token"])
				user, ok := got["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "uid-1", user["id"])
				assert.Equal(t, "2025-08-01T12:00:00Z", user["lastLogin"])
			} else {
				assert.Nil(t, got["token"])
				assert.Nil(t, got["user"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
