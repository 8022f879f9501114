// Package access реализует чистый слой принятия решений о доступе:
// сборку контекста пользователя, классификаторы ролей и статусов подписки,
// вычисление уровня доступа и проверку премиум-данных.
//
// Функции пакета не имеют состояния и побочных эффектов, их можно
// вызывать конкурентно. Журналирование решений выполняет вызывающий код.
package access

import (
	"strings"
	"time"

	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// Session — сырые данные сессии, как они приходят из токена.
type Session struct {
	UserID             string
	Role               string
	SubscriptionStatus string
	SubscriptionEndsAt *time.Time
}

// ParseRole разбирает строку роли. ok=false для неизвестного значения.
func ParseRole(s string) (models.Role, bool) {
	r := models.Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range models.Roles() {
		if r == known {
			return r, true
		}
	}
	return models.RoleVisitor, false
}

// ParseSubscriptionStatus разбирает строку статуса подписки.
// ok=false для неизвестного значения.
func ParseSubscriptionStatus(s string) (models.SubscriptionStatus, bool) {
	st := models.SubscriptionStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range models.SubscriptionStatuses() {
		if st == known {
			return st, true
		}
	}
	return models.SubscriptionNone, false
}

// BuildContext нормализует данные сессии. Отсутствующая или неизвестная роль
// становится VISITOR, статус подписки — NONE.
func BuildContext(s Session) models.AccessContext {
	role, _ := ParseRole(s.Role)
	status, _ := ParseSubscriptionStatus(s.SubscriptionStatus)

	return models.AccessContext{
		UserID:             strings.TrimSpace(s.UserID),
		Role:               role,
		SubscriptionStatus: status,
		SubscriptionEndsAt: s.SubscriptionEndsAt,
	}
}

// AnonymousContext возвращает контекст неавторизованного посетителя.
func AnonymousContext() models.AccessContext {
	return BuildContext(Session{})
}
