package cache

import (
	"context"
	"time"

	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

const preferencesKeyPrefix = "notification_prefs:"

// PreferencesCache кеширует настройки уведомлений пользователя.
type PreferencesCache struct {
	cache *Cache
	ttl   time.Duration
}

// NewPreferencesCache создаёт кеш настроек с временем жизни ttl.
func NewPreferencesCache(c *Cache, ttl time.Duration) *PreferencesCache {
	return &PreferencesCache{cache: c, ttl: ttl}
}

func preferencesKey(userID string) string {
	return preferencesKeyPrefix + userID
}

// GetPreferences возвращает настройки из кеша и признак попадания.
func (p *PreferencesCache) GetPreferences(ctx context.Context, userID string) (models.NotificationPreferences, bool, error) {
	var prefs models.NotificationPreferences
	found, err := p.cache.Get(ctx, preferencesKey(userID), &prefs)
	if err != nil || !found {
		return models.NotificationPreferences{}, false, err
	}
	return prefs, true, nil
}

// SetPreferences кладёт настройки в кеш.
func (p *PreferencesCache) SetPreferences(ctx context.Context, userID string, prefs models.NotificationPreferences) error {
	return p.cache.Set(ctx, preferencesKey(userID), prefs, p.ttl)
}

// InvalidatePreferences удаляет настройки пользователя из кеша.
func (p *PreferencesCache) InvalidatePreferences(ctx context.Context, userID string) error {
	return p.cache.Invalidate(ctx, preferencesKey(userID))
}
