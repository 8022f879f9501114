package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// AccessCtx — ключ нормализованного контекста доступа.
	AccessCtx Key = "access_context"
	// Validation — ключ статуса валидации аккаунта.
	Validation Key = "validation_status"
)

// WithAccessContext кладёт контекст доступа и статус валидации в ctx.
func WithAccessContext(ctx context.Context, actx models.AccessContext, vs models.ValidationStatus) context.Context {
	ctx = context.WithValue(ctx, AccessCtx, actx)
	return context.WithValue(ctx, Validation, vs)
}

// AccessContextFrom возвращает контекст доступа запроса. Если middleware
// аутентификации не отработал, возвращается анонимный контекст.
func AccessContextFrom(ctx context.Context) models.AccessContext {
	if actx, ok := ctx.Value(AccessCtx).(models.AccessContext); ok {
		return actx
	}
	return access.AnonymousContext()
}

// ValidationStatusFrom возвращает статус валидации аккаунта из токена.
// Пустой статус трактуется как PENDING.
func ValidationStatusFrom(ctx context.Context) models.ValidationStatus {
	if vs, ok := ctx.Value(Validation).(models.ValidationStatus); ok && vs != "" {
		return vs
	}
	return models.ValidationPending
}
