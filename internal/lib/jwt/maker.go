// Package jwt реализует выпуск и проверку сессионных JWT токенов.
//
// Maker определяет интерфейс для создания и проверки токена с идентификатором
// пользователя. MakerImpl — конкретная реализация на HMAC-SHA256 с секретным
// ключом и фиксированным сроком жизни токена.
package jwt

import (
	"errors"
	"time"
)

// ErrEmptySecretKey возвращается конструктором, если секретный ключ не задан.
// Сервис обязан отказаться стартовать с пустым ключом, а не подписывать
// токены неопределённым секретом.
var ErrEmptySecretKey = errors.New("jwt secret key is empty")

// Maker описывает интерфейс для выпуска и проверки JWT токенов.
type Maker interface {
	// GenerateToken выпускает подписанный токен для пользователя с данным UID.
	GenerateToken(userUID string) (string, error)
	// ParseToken проверяет подпись и срок жизни токена, возвращает его claims.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
// Пустой ключ — ошибка конфигурации, возвращается ErrEmptySecretKey.
func NewJWTMaker(secretKey string, ttl time.Duration) (*MakerImpl, error) {
	if secretKey == "" {
		return nil, ErrEmptySecretKey
	}
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}, nil
}
