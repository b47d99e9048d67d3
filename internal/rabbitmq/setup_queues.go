package rabbitmq

// AuthExchange — exchange для событий сервиса аутентификации.
const AuthExchange = "auth"

// RegistrationsQueue — очередь событий регистрации для приветственных писем.
const RegistrationsQueue = "auth.registrations"

// RegisteredRoutingKey — ключ маршрутизации события регистрации.
const RegisteredRoutingKey = "registered"

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetAuthQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: RegistrationsQueue, RoutingKey: RegisteredRoutingKey},
		// при необходимости дополнительные очереди для других воркеров
	}
}
