// Package services содержит логику бизнес-уровня для регистрации,
// входа и получения профиля пользователя.
package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"context"

	"github.com/google/uuid"

	"github.com/drinkshop/auth-service/internal/lib/jwt"
	"github.com/drinkshop/auth-service/internal/lib/password"
	"github.com/drinkshop/auth-service/internal/lib/sl"
	"github.com/drinkshop/auth-service/internal/models"
	"github.com/drinkshop/auth-service/internal/storage"
)

// ErrEmailTaken возвращается при регистрации на уже занятый email.
var ErrEmailTaken = errors.New("user with this email already exists")

// ErrInvalidCredentials возвращается при неверном email или пароле.
// Ошибка одна для обоих случаев, чтобы по ответу нельзя было перебирать
// зарегистрированные адреса.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrUserNotFound возвращается, когда токен валиден, но запись пользователя
// уже удалена из хранилища.
var ErrUserNotFound = errors.New("user not found")

// profileCacheTTL — время жизни кэшированного профиля. Короткое, чтобы
// удаление пользователя становилось видно проверке сессии без ручной
// инвалидации.
const profileCacheTTL = 5 * time.Minute

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя; занятый email — storage.ErrUserExists.
	CreateUser(ctx context.Context, user models.User) error

	// GetUserByEmail возвращает пользователя по email, включая хэш пароля.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdateLastLogin фиксирует дату успешного входа.
	UpdateLastLogin(ctx context.Context, userUID string, loginTime time.Time) error
}

// ProfileCache описывает кэш профилей, используемый при проверке сессии.
type ProfileCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// RegistrationNotifier публикует событие об успешной регистрации.
type RegistrationNotifier interface {
	PublishUserRegistered(event models.UserRegisteredEvent) error
}

// AuthService отвечает за регистрацию, вход и получение профиля.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	cache    ProfileCache         // nil — кэширование выключено
	notifier RegistrationNotifier // nil — события регистрации не публикуются
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker,
	cache ProfileCache, notifier RegistrationNotifier, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля и выпускает
// сессионный токен. Уникальность email отдана ограничению в базе:
// конфликт транслируется в ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (*models.User, string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}
	user := models.User{
		UID:          uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.jwtMaker.GenerateToken(user.UID)
	if err != nil {
		return nil, "", err
	}

	if s.notifier != nil {
		event := models.UserRegisteredEvent{
			UserUID:      user.UID,
			Name:         user.Name,
			Email:        user.Email,
			RegisteredAt: user.CreatedAt,
		}
		// Письмо вторично: ошибка публикации не отменяет регистрацию.
		if err := s.notifier.PublishUserRegistered(event); err != nil {
			s.log.Error("failed to publish user registered event", sl.Err(err))
		}
	}

	return &user, token, nil
}

// Login проверяет пароль пользователя, обновляет дату входа и выпускает токен.
// Несуществующий email и неверный пароль дают одну и ту же ошибку
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.UID, now); err != nil {
		return nil, "", err
	}
	user.LastLogin = &now

	if s.cache != nil {
		// Кэшированный профиль содержит старый last_login.
		if err := s.cache.Invalidate(ctx, profileCacheKey(user.UID)); err != nil {
			s.log.Error("failed to invalidate profile cache", sl.Err(err))
		}
	}

	token, err := s.jwtMaker.GenerateToken(user.UID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetProfile возвращает профиль пользователя по UID из валидного токена.
// Удалённая запись — ErrUserNotFound. Профиль кэшируется на profileCacheTTL.
func (s *AuthService) GetProfile(ctx context.Context, userUID string) (*models.User, error) {
	if s.cache != nil {
		var cached models.User
		found, err := s.cache.Get(ctx, profileCacheKey(userUID), &cached)
		if err != nil {
			s.log.Error("failed to read profile cache", sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, profileCacheKey(userUID), user, profileCacheTTL); err != nil {
			s.log.Error("failed to write profile cache", sl.Err(err))
		}
	}
	return user, nil
}

func profileCacheKey(userUID string) string {
	return fmt.Sprintf("profile:%s", userUID)
}
