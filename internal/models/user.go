package models

// User — минимальные данные пользователя, нужные сервису: адрес для писем,
// роль и статус проверки аккаунта. Учётные записи ведёт внешний сервис.
type User struct {
	ID               string           `json:"id"`
	Email            string           `json:"email"`
	Role             Role             `json:"role"`
	ValidationStatus ValidationStatus `json:"validation_status"`
}
