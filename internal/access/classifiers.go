package access

import "github.com/magabrotheeeer/talent-marketplace/internal/models"

// IsAdminRole сообщает, что роль административная.
func IsAdminRole(role models.Role) bool {
	return role == models.RoleAdmin
}

// IsSubscriberRole сообщает, что роль может оформлять подписку.
func IsSubscriberRole(role models.Role) bool {
	return role == models.RoleProfessional || role == models.RoleCompany
}

// HasPremiumSubscription сообщает, что статус даёт премиум-доступ.
// PAST_DUE — льготный период после неудачного платежа, доступ сохраняется.
func HasPremiumSubscription(status models.SubscriptionStatus) bool {
	switch status {
	case models.SubscriptionActive, models.SubscriptionTrial, models.SubscriptionPastDue:
		return true
	default:
		return false
	}
}
