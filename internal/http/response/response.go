// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Каждый ответ несёт флаг
// success; успешные ответы аутентификации дополнительно несут токен и профиль.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Success — признак успеха запроса.
// Поле Message — человекочитаемое сообщение (опционально).
// Поля Token и User заполняются при успешной аутентификации.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    any    `json:"user,omitempty"`
}

// Error возвращает Response с признаком неуспеха и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Success: false,
		Message: msg,
	}
}

// OK возвращает успешный Response с сообщением.
func OK(msg string) Response {
	return Response{
		Success: true,
		Message: msg,
	}
}

// Auth возвращает успешный Response с токеном и профилем пользователя.
func Auth(msg, token string, user any) Response {
	return Response{
		Success: true,
		Message: msg,
		Token:   token,
		User:    user,
	}
}

// User возвращает успешный Response с профилем пользователя без токена.
func User(user any) Response {
	return Response{
		Success: true,
		User:    user,
	}
}

// ValidationError формирует Response c сообщениями по каждому невалидному полю,
// объединёнными через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "strongpassword":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must contain upper and lower case letters and a digit", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Success: false,
		Message: strings.Join(errsMsgs, ", "),
	}
}
