// Package authservice предоставляет сборку и маршруты HTTP-сервиса аутентификации.
package authservice

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/drinkshop/auth-service/internal/http/handlers/auth/login"
	"github.com/drinkshop/auth-service/internal/http/handlers/auth/logout"
	"github.com/drinkshop/auth-service/internal/http/handlers/auth/register"
	"github.com/drinkshop/auth-service/internal/http/handlers/auth/validate"
	"github.com/drinkshop/auth-service/internal/http/handlers/health"
	"github.com/drinkshop/auth-service/internal/http/middlewarectx"
	"github.com/drinkshop/auth-service/internal/http/response"
	"github.com/drinkshop/auth-service/internal/lib/jwt"
	authservices "github.com/drinkshop/auth-service/internal/services/auth"
)

// RegisterRoutes регистрирует все маршруты сервиса.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservices.AuthService,
	jwtMaker jwt.Maker, env string, corsAllowedOrigins []string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.CORSMiddleware(corsAllowedOrigins),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Handler(env))

		r.Route("/auth", func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, rate.NewLimiter(10, 30)))

			// Открытые конечные точки
			r.Post("/register", register.New(logger, authService).ServeHTTP)
			r.Post("/login", login.New(logger, authService).ServeHTTP)

			// Группа с JWT аутентификацией
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
				r.Get("/validate-token", validate.New(logger, authService).ServeHTTP)
				r.Post("/logout", logout.New(logger).ServeHTTP)
			})
		})
	})

	// JSON-ответ на неизвестные маршруты вместо стандартного text/plain
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, req, response.Error("Route not found"))
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
