package accesslog

import "github.com/magabrotheeeer/talent-marketplace/internal/models"

// Типы ресурсов в журнале.
const (
	ResourceTalentPremium   = "talent_premium"
	ResourceCollection      = "collection"
	ResourceConversation    = "conversation"
	ResourceContactRequest  = "contact_request"
	ResourceNotification    = "notification"
	ResourceNotificationPrf = "notification_preferences"
)

// Entry собирает запись журнала из решения.
func Entry(actx models.AccessContext, resourceType, resourceID, action string, res models.AccessCheckResult) models.AccessLogEntry {
	return models.AccessLogEntry{
		UserID:       actx.UserID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Granted:      res.Granted,
		Reason:       res.Reason,
	}
}
