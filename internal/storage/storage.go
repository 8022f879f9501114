// Package storage содержит общие ошибки слоя хранения.
package storage

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound возвращается, когда запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrConflict возвращается, когда запись уже изменена другим запросом.
	ErrConflict = errors.New("conflict")
)

// ParseID приводит идентификатор записи к каноническому виду UUID.
// Строка, которая не является UUID, не может совпасть ни с одной записью,
// поэтому для неё возвращается ErrNotFound.
func ParseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("malformed id %q: %w", id, ErrNotFound)
	}
	return u.String(), nil
}
