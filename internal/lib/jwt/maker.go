// Package jwt реализует выпуск и разбор JWT токенов сессии маркетплейса.
//
// Токен несёт ровно те поля, из которых строится контекст доступа:
// идентификатор пользователя, роль, статус подписки и статус валидации аккаунта.
package jwt

import (
	"errors"
	"time"
)

// ErrInvalidToken оборачивает любую причину, по которой токен не принят.
var ErrInvalidToken = errors.New("invalid token")

// clockSkew — допустимое расхождение часов при проверке exp и iat.
const clockSkew = 30 * time.Second

// Maker подписывает и проверяет токены HS256 общим секретом.
type Maker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTMaker создаёт Maker с секретом secretKey и временем жизни токена ttl.
func NewJWTMaker(secretKey string, ttl time.Duration) *Maker {
	return &Maker{
		secret: []byte(secretKey),
		ttl:    ttl,
		now:    time.Now,
	}
}
