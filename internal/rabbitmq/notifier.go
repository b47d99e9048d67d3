package rabbitmq

import (
	"github.com/streadway/amqp"

	librabbitmq "github.com/drinkshop/auth-service/internal/lib/rabbitmq"
	"github.com/drinkshop/auth-service/internal/models"
)

// Notifier публикует события регистрации в exchange аутентификации.
// Реализует интерфейс RegistrationNotifier бизнес-сервиса.
type Notifier struct {
	ch *amqp.Channel
}

// NewNotifier создает новый экземпляр Notifier поверх открытого канала.
func NewNotifier(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// PublishUserRegistered отправляет событие регистрации пользователя.
func (n *Notifier) PublishUserRegistered(event models.UserRegisteredEvent) error {
	return librabbitmq.PublishMessage(n.ch, AuthExchange, RegisteredRoutingKey, event)
}
