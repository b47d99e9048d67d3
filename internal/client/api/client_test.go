package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drinkshop/auth-service/internal/client/api"
)

func TestClient_Login(t *testing.T) {
	t.Run("successful login", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/auth/login", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "user1@example.com", body["email"])

			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"message": "Login successful",
				"token":   "signed-token",
				"user":    map[string]any{"id": "uid-1", "name": "User One", "email": "user1@example.com"},
			})
		}))
		defer srv.Close()

		client := api.New(srv.URL+"/api", 5*time.Second)

		resp, err := client.Login(context.Background(), "user1@example.com", "Password1")
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "signed-token", resp.Token)
		require.NotNil(t, resp.User)
		assert.Equal(t, "uid-1", resp.User.ID)
	})

	t.Run("server refusal is not a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "Invalid email or password",
			})
		}))
		defer srv.Close()

		client := api.New(srv.URL+"/api", 5*time.Second)

		resp, err := client.Login(context.Background(), "user1@example.com", "wrong")
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid email or password", resp.Message)
		assert.Nil(t, resp.User)
	})

	t.Run("unreachable server is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client := api.New(srv.URL+"/api", time.Second)

		resp, err := client.Login(context.Background(), "user1@example.com", "Password1")
		require.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("unparseable body is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer srv.Close()

		client := api.New(srv.URL+"/api", time.Second)

		resp, err := client.Login(context.Background(), "user1@example.com", "Password1")
		require.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestClient_ValidateToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/validate-token", r.URL.Path)
		assert.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]any{"id": "uid-1", "name": "User One", "email": "user1@example.com"},
		})
	}))
	defer srv.Close()

	client := api.New(srv.URL+"/api", 5*time.Second)

	resp, err := client.ValidateToken(context.Background(), "stored-token")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "user1@example.com", resp.User.Email)
}

func TestClient_Register(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "User One", body["name"])
		assert.Equal(t, "Password1", body["password"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "User registered successfully",
			"token":   "signed-token",
			"user":    map[string]any{"id": "uid-1", "name": "User One", "email": "user1@example.com"},
		})
	}))
	defer srv.Close()

	client := api.New(srv.URL+"/api", 5*time.Second)

	resp, err := client.Register(context.Background(), "User One", "user1@example.com", "Password1")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "signed-token", resp.Token)
}

func TestClient_Logout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Logged out successfully",
		})
	}))
	defer srv.Close()

	client := api.New(srv.URL+"/api", 5*time.Second)

	resp, err := client.Logout(context.Background(), "stored-token")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Logged out successfully", resp.Message)
}
