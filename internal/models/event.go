package models

import "time"

// UserRegisteredEvent — сообщение, публикуемое в RabbitMQ при успешной
// регистрации пользователя. Потребляется сервисом приветственных писем.
type UserRegisteredEvent struct {
	UserUID      string    `json:"user_uid"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}
