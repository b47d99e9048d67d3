// Package session реализует клиентское состояние сессии.
//
// Session хранит текущий токен и профиль пользователя, переживает перезапуск
// за счёт сохранённого токена и выполняет фоновую проверку сессии при
// инициализации. Состояние живёт в явно передаваемом объекте, а не в
// глобальной переменной; потребители получают его через конструктор.
//
// Инварианты:
//   - token и user меняются только вместе, под одной блокировкой:
//     наблюдатель никогда не увидит user без token или наоборот;
//   - loading == true от создания до завершения первичной проверки,
//     независимо от её исхода;
//   - любая неудача фоновой проверки (сетевая, невалидный токен, удалённый
//     пользователь) тихо приводит к состоянию "не вошёл" и удалению
//     сохранённого токена.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/drinkshop/auth-service/internal/client/api"
	"github.com/drinkshop/auth-service/internal/lib/sl"
)

// ErrUnauthorized возвращается клиентским гейтом при отсутствии валидной сессии.
var ErrUnauthorized = errors.New("unauthorized")

// transportFailureMessage показывается пользователю при сетевой ошибке
// явного входа или регистрации. Конкретная причина остаётся в логе.
const transportFailureMessage = "Network error. Please try again."

// API описывает используемые операции клиента сервиса аутентификации.
type API interface {
	Register(ctx context.Context, name, email, password string) (*api.Response, error)
	Login(ctx context.Context, email, password string) (*api.Response, error)
	ValidateToken(ctx context.Context, token string) (*api.Response, error)
	Logout(ctx context.Context, token string) (*api.Response, error)
}

// TokenStore описывает долговременное хранилище токена.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// State — снимок состояния сессии для потребителей.
type State struct {
	Token   string
	User    *api.Profile
	Loading bool
}

// Result — исход явной операции входа или регистрации.
type Result struct {
	Success bool
	Message string
}

// Session — клиентский контекст сессии.
type Session struct {
	client API
	store  TokenStore
	log    *slog.Logger

	mu      sync.Mutex
	token   string
	user    *api.Profile
	loading bool

	initOnce sync.Once
	initDone chan struct{}
}

// New создает Session в состоянии loading. До вызова Init профиль
// и токен пусты, а гейт не принимает решений.
func New(client API, store TokenStore, log *slog.Logger) *Session {
	return &Session{
		client:   client,
		store:    store,
		log:      log,
		loading:  true,
		initDone: make(chan struct{}),
	}
}

// Init выполняет первичную проверку сессии: читает сохранённый токен
// и, если он есть, проверяет его на сервере. Повторные вызовы не имеют
// эффекта.
func (s *Session) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		defer close(s.initDone)
		s.init(ctx)
	})
}

func (s *Session) init(ctx context.Context) {
	token, err := s.store.Load()
	if err != nil {
		s.log.Error("failed to load persisted token", sl.Err(err))
		token = ""
	}

	if token == "" {
		s.setState("", nil)
		return
	}

	resp, err := s.client.ValidateToken(ctx, token)
	if err != nil || !resp.Success || resp.User == nil {
		// Фоновая проверка падает на каждом запуске с протухшим токеном,
		// поэтому исход не показывается пользователю, а только логируется.
		if err != nil {
			s.log.Info("session validation failed", sl.Err(err))
		} else {
			s.log.Info("persisted token rejected", slog.String("message", resp.Message))
		}
		if err := s.store.Clear(); err != nil {
			s.log.Error("failed to drop persisted token", sl.Err(err))
		}
		s.setState("", nil)
		return
	}

	s.setState(token, resp.User)
}

// Login выполняет явный вход. При успехе токен и профиль сохраняются
// одним переходом; при отказе сервера или сетевой ошибке текущее
// состояние сессии не меняется.
func (s *Session) Login(ctx context.Context, email, password string) Result {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.log.Error("login request failed", sl.Err(err))
		return Result{Success: false, Message: transportFailureMessage}
	}
	if !resp.Success || resp.User == nil || resp.Token == "" {
		return Result{Success: false, Message: resp.Message}
	}

	s.adopt(resp.Token, resp.User)
	return Result{Success: true}
}

// Register выполняет регистрацию с немедленным входом, как это делает
// форма регистрации браузерного клиента.
func (s *Session) Register(ctx context.Context, name, email, password string) Result {
	resp, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		s.log.Error("register request failed", sl.Err(err))
		return Result{Success: false, Message: transportFailureMessage}
	}
	if !resp.Success || resp.User == nil || resp.Token == "" {
		return Result{Success: false, Message: resp.Message}
	}

	s.adopt(resp.Token, resp.User)
	return Result{Success: true}
}

// Logout завершает сессию. Серверный вызов — только подтверждение
// и выполняется по возможности; сессию завершает удаление токена.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token != "" {
		if _, err := s.client.Logout(ctx, token); err != nil {
			s.log.Info("logout acknowledgment failed", sl.Err(err))
		}
	}

	if err := s.store.Clear(); err != nil {
		s.log.Error("failed to drop persisted token", sl.Err(err))
	}
	s.setState("", nil)
}

// State возвращает снимок текущего состояния сессии.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Token:   s.token,
		User:    s.user,
		Loading: s.loading,
	}
}

// RequireUser — клиентский гейт: дожидается завершения первичной проверки
// и возвращает профиль, если сессия валидна. Пока loading == true, решение
// не принимается — вызов блокируется, а не отвечает отказом.
func (s *Session) RequireUser(ctx context.Context) (*api.Profile, error) {
	select {
	case <-s.initDone:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, ErrUnauthorized
	}
	return s.user, nil
}

// adopt сохраняет токен и применяет новое состояние одним переходом.
func (s *Session) adopt(token string, user *api.Profile) {
	if err := s.store.Save(token); err != nil {
		s.log.Error("failed to persist token", sl.Err(err))
	}
	s.setState(token, user)
}

func (s *Session) setState(token string, user *api.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	s.loading = false
}
