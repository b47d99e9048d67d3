// Package validate реализует HTTP-обработчик проверки сессии.
//
// Токен проверяется в middleware до вызова обработчика; сюда запрос доходит
// только с валидной подписью. Обработчик разрешает UID из контекста в текущий
// профиль пользователя и возвращает его без хэша пароля.
package validate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/drinkshop/auth-service/internal/http/middlewarectx"
	"github.com/drinkshop/auth-service/internal/http/response"
	"github.com/drinkshop/auth-service/internal/lib/sl"
	"github.com/drinkshop/auth-service/internal/models"
	services "github.com/drinkshop/auth-service/internal/services/auth"
)

// Service описывает интерфейс получения профиля пользователя.
type Service interface {
	GetProfile(ctx context.Context, userUID string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы проверки сессии.
type Handler struct {
	log  *slog.Logger
	auth Service
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:  log,
		auth: auth,
	}
}

// ServeHTTP godoc
// @Summary Проверка сессии
// @Description Возвращает профиль пользователя по валидному bearer-токену.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Текущий профиль"
// @Failure 401 {object} response.Response "Невалидный или истёкший токен"
// @Failure 404 {object} response.Response "Пользователь удалён"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /auth/validate-token [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.validate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("no user uid in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Invalid or expired token"))
		return
	}

	user, err := h.auth.GetProfile(r.Context(), userUID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			log.Info("user behind valid token is gone", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found"))
			return
		}
		log.Error("failed to load profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to load user"))
		return
	}

	render.JSON(w, r, response.User(user.Profile()))
}
