// Package tokenstore сохраняет сессионный токен между запусками клиента.
// Токен лежит одним файлом с правами 0600 в каталоге конфигурации
// пользователя — аналог localStorage браузерного клиента под
// фиксированным ключом.
package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore хранит токен в файле на диске.
type FileStore struct {
	path string
}

// NewFileStore создает хранилище токена по заданному пути.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath возвращает стандартный путь файла токена:
// <конфиг пользователя>/drinkshop/token.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("tokenstore.DefaultPath: %w", err)
	}
	return filepath.Join(dir, "drinkshop", "token"), nil
}

// Load читает сохранённый токен. Отсутствие файла — не ошибка:
// возвращается пустая строка.
func (s *FileStore) Load() (string, error) {
	const op = "tokenstore.Load"
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save записывает токен, создавая каталог при необходимости.
func (s *FileStore) Save(token string) error {
	const op = "tokenstore.Save"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет сохранённый токен. Отсутствие файла — не ошибка.
func (s *FileStore) Clear() error {
	const op = "tokenstore.Clear"
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
