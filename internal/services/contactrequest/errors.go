package contactrequest

import "github.com/magabrotheeeer/talent-marketplace/internal/models"

// RateLimitError возвращается, когда исчерпан дневной лимит запросов.
type RateLimitError struct {
	Result models.RateLimitResult
}

func (e *RateLimitError) Error() string {
	return e.Result.Reason
}

// ValidationError возвращается при некорректных данных запроса.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid contact request: " + e.Reason
}
