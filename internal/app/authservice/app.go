package authservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/drinkshop/auth-service/internal/cache"
	"github.com/drinkshop/auth-service/internal/config"
	"github.com/drinkshop/auth-service/internal/lib/jwt"
	"github.com/drinkshop/auth-service/internal/migrations"
	"github.com/drinkshop/auth-service/internal/rabbitmq"
	authservices "github.com/drinkshop/auth-service/internal/services/auth"
	"github.com/drinkshop/auth-service/internal/storage"
	"github.com/streadway/amqp"
)

// App собирает зависимости HTTP-сервиса аутентификации и управляет его
// жизненным циклом.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *storage.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New подключает хранилище, применяет миграции и собирает HTTP-сервер.
// Redis и RabbitMQ опциональны: без них сервис работает, теряя только
// кэширование профилей и приветственные письма.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = storage.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	jwtMaker, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	var profileCache authservices.ProfileCache
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		profileCache = cacheRedis
	}

	app := &App{logger: logger, db: db}

	var notifier authservices.RegistrationNotifier
	if cfg.RabbitMQ.Enabled {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetAuthQueues())
		if err != nil {
			conn.Close()
			return nil, err
		}
		app.rabbitConn = conn
		app.rabbitCh = ch
		notifier = rabbitmq.NewNotifier(ch)
	}

	authService := authservices.NewAuthService(db, jwtMaker, profileCache, notifier, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, jwtMaker, cfg.Env, cfg.CORSAllowedOrigins)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return app, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
			return
		}
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("failed to shutdown http server", slog.Any("err", err))
		}
		a.close()
		return nil
	case err := <-errCh:
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.rabbitCh != nil {
		if err := a.rabbitCh.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq channel", slog.Any("err", err))
		}
	}
	if a.rabbitConn != nil {
		if err := a.rabbitConn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", err))
		}
	}
	if err := a.db.DB.Close(); err != nil {
		a.logger.Error("failed to close database", slog.Any("err", err))
	}
}
