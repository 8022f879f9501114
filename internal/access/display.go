package access

import "github.com/magabrotheeeer/talent-marketplace/internal/models"

var subscriptionDisplay = map[models.SubscriptionStatus]models.SubscriptionDisplayInfo{
	models.SubscriptionActive:    {Label: "Active", Color: "green"},
	models.SubscriptionTrial:     {Label: "Trial", Color: "green"},
	models.SubscriptionPastDue:   {Label: "Past due", Color: "yellow"},
	models.SubscriptionCancelled: {Label: "Cancelled", Color: "red"},
	models.SubscriptionExpired:   {Label: "Expired", Color: "red"},
	models.SubscriptionNone:      {Label: "No subscription", Color: "gray"},
}

// GetSubscriptionDisplayInfo возвращает подпись и цвет статуса подписки для интерфейса.
// Для авторизации не используется.
func GetSubscriptionDisplayInfo(status models.SubscriptionStatus) models.SubscriptionDisplayInfo {
	info, ok := subscriptionDisplay[status]
	if !ok {
		info = subscriptionDisplay[models.SubscriptionNone]
	}
	info.HasAccess = HasPremiumSubscription(status)
	return info
}
