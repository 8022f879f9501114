package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity — данные пользователя, которые кладутся в токен.
type Identity struct {
	UserUID            string
	Role               string
	SubscriptionStatus string
	SubscriptionEndsAt *time.Time
	ValidationStatus   string
}

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserUID            string           `json:"user_uid"`
	Role               string           `json:"role"`
	SubscriptionStatus string           `json:"subscription_status,omitempty"`
	SubscriptionEndsAt *jwt.NumericDate `json:"subscription_ends_at,omitempty"`
	ValidationStatus   string           `json:"validation_status,omitempty"`
	jwt.RegisteredClaims
}

// Identity возвращает данные пользователя из claims.
func (c *CustomClaims) Identity() Identity {
	id := Identity{
		UserUID:            c.UserUID,
		Role:               c.Role,
		SubscriptionStatus: c.SubscriptionStatus,
		ValidationStatus:   c.ValidationStatus,
	}
	if c.SubscriptionEndsAt != nil {
		t := c.SubscriptionEndsAt.Time
		id.SubscriptionEndsAt = &t
	}
	return id
}

// GenerateToken выпускает токен для identity со сроком жизни Maker.
func (m *Maker) GenerateToken(identity Identity) (string, error) {
	const op = "jwt.GenerateToken"
	now := m.now()
	claims := CustomClaims{
		UserUID:            identity.UserUID,
		Role:               identity.Role,
		SubscriptionStatus: identity.SubscriptionStatus,
		ValidationStatus:   identity.ValidationStatus,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	if identity.SubscriptionEndsAt != nil {
		claims.SubscriptionEndsAt = jwt.NewNumericDate(*identity.SubscriptionEndsAt)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken проверяет подпись, алгоритм и срок действия токена.
// Токен без идентификатора пользователя не принимается. Все ошибки
// оборачивают ErrInvalidToken.
func (m *Maker) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkew),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	if claims.UserUID == "" {
		return nil, fmt.Errorf("%s: %w: missing user_uid", op, ErrInvalidToken)
	}
	return claims, nil
}
