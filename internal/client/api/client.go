// Package api реализует HTTP-клиент сервиса аутентификации.
//
// Клиент различает два вида неудач: транспортную ошибку (сервер недоступен,
// ответ не разобран) — она возвращается как error, и отказ сервера
// (success=false) — он возвращается как обычный Response без ошибки.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Profile — публичный профиль пользователя из ответов сервера.
type Profile struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Response — унифицированное тело ответа сервера аутентификации.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Token   string   `json:"token,omitempty"`
	User    *Profile `json:"user,omitempty"`
}

// Client — HTTP-клиент конечных точек аутентификации.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New создает новый экземпляр Client для сервера по адресу baseURL,
// например "http://localhost:8080/api".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Register регистрирует нового пользователя.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Response, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.post(ctx, "/auth/register", "", body)
}

// Login выполняет вход по email и паролю.
func (c *Client) Login(ctx context.Context, email, password string) (*Response, error) {
	body := map[string]string{"email": email, "password": password}
	return c.post(ctx, "/auth/login", "", body)
}

// ValidateToken проверяет сессионный токен и возвращает текущий профиль.
func (c *Client) ValidateToken(ctx context.Context, token string) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/auth/validate-token", token, nil)
}

// Logout подтверждает выход на сервере. Токен при этом остаётся валидным
// до истечения срока, фактический выход — удаление токена клиентом.
func (c *Client) Logout(ctx context.Context, token string) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil)
}

func (c *Client) post(ctx context.Context, path, token string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, token, body)
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*Response, error) {
	const op = "api.do"

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
