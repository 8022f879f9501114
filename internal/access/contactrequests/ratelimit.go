package contactrequests

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

const (
	// MaxPendingRequestsPerDay — сколько ожидающих ответа запросов можно
	// отправить за скользящие сутки.
	MaxPendingRequestsPerDay = 10
	// RateLimitWindow — длина окна лимита.
	RateLimitWindow = 24 * time.Hour
)

// CheckRateLimit проверяет дневной лимит. currentCount — число ожидающих
// запросов отправителя за окно, oldestPending — время самого старого из них.
// Лимит сбрасывается, когда самый старый запрос выходит из окна.
func CheckRateLimit(currentCount int, oldestPending *time.Time) models.RateLimitResult {
	res := models.RateLimitResult{
		Allowed:   currentCount < MaxPendingRequestsPerDay,
		Remaining: max(0, MaxPendingRequestsPerDay-currentCount),
	}
	if res.Allowed {
		return res
	}

	res.Reason = fmt.Sprintf("Rate limit reached. You can send up to %d contact requests per day", MaxPendingRequestsPerDay)
	if oldestPending != nil {
		resetAt := oldestPending.Add(RateLimitWindow)
		res.ResetAt = &resetAt
	}
	return res
}
