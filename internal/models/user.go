// Package models содержит доменную модель пользователя магазина,
// включающую данные учётной записи, хэш пароля и дату последнего входа.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя магазина.
type User struct {
	UID          string     // Уникальный идентификатор пользователя
	Name         string     // Отображаемое имя пользователя
	Email        string     // Электронная почта (уникальная, ключ входа)
	PasswordHash string     // Хэш пароля пользователя, никогда не сериализуется наружу
	LastLogin    *time.Time // Дата последнего входа, nil до первого входа
	CreatedAt    time.Time  // Дата создания учётной записи
}

// Profile возвращает публичное представление пользователя для HTTP-ответов.
// Хэш пароля в него не попадает.
func (u *User) Profile() map[string]any {
	profile := map[string]any{
		"id":    u.UID,
		"name":  u.Name,
		"email": u.Email,
	}
	if u.LastLogin != nil {
		profile["lastLogin"] = u.LastLogin
	}
	return profile
}
