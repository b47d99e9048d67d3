// Package welcomesender собирает воркер приветственных писем:
// потребляет события регистрации из RabbitMQ и отправляет письма по SMTP.
package welcomesender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/drinkshop/auth-service/internal/config"
	"github.com/drinkshop/auth-service/internal/lib/smtp"
	"github.com/drinkshop/auth-service/internal/rabbitmq"
	senderservice "github.com/drinkshop/auth-service/internal/services/welcome"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetAuthQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(logger, newTransport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.RegistrationsQueue, a.senderService.SendWelcomeEmail)
	if err != nil {
		a.logger.Error("failed to start registrations consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("welcome-sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
