package access

import "github.com/magabrotheeeer/talent-marketplace/internal/models"

// DeniedError оборачивает отрицательное решение, когда сервис должен
// прервать операцию. Сами проверки ошибок не возвращают.
type DeniedError struct {
	Result models.AccessCheckResult
}

func (e *DeniedError) Error() string {
	return "access denied: " + e.Result.Reason
}

// Denied возвращает ошибку для отрицательного решения r.
func Denied(r models.AccessCheckResult) error {
	return &DeniedError{Result: r}
}
