// Package logout реализует HTTP-обработчик выхода из сессии.
//
// Сервер не хранит состояние сессий: выпущенный токен живёт до истечения
// своего срока, таблицы сессий нет. Выход — подтверждение для клиента,
// фактическое завершение сессии выполняет клиент, удаляя сохранённый токен.
// Токен при этом проверяется тем же middleware, что и проверка сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/drinkshop/auth-service/internal/http/response"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Подтверждает выход; токен остаётся валидным до истечения срока.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Выход подтверждён"
// @Failure 401 {object} response.Response "Невалидный или истёкший токен"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	log.Info("logout acknowledged")
	render.JSON(w, r, response.OK("Logged out successfully"))
}
