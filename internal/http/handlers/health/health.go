// Package health реализует обработчик проверки живости сервиса.
package health

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// Response — тело ответа проверки живости.
type Response struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}

// Handler возвращает обработчик, сообщающий окружение и текущее время.
func Handler(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, Response{
			Status:      "OK",
			Timestamp:   time.Now().UTC(),
			Environment: env,
		})
	}
}
