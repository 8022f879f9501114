// Package notifications решает, доставлять ли уведомление пользователю по
// каждому каналу, и кто может просматривать уведомления и их настройки.
//
// Настройки применяются слоями: общий флаг, затем флаг канала, затем
// переопределение для типа события. Незаданный слой означает «отправлять».
package notifications

import (
	"time"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// EmailRateLimit — минимальный интервал между письмами одного типа.
const EmailRateLimit = time.Hour

const reasonRateLimited = "Rate limited"

// ShouldSendInAppNotification сообщает, создавать ли уведомление в приложении.
func ShouldSendInAppNotification(prefs *models.NotificationPreferences, typ models.NotificationType) bool {
	if prefs == nil {
		return true
	}
	return enabled(prefs.Enabled) &&
		enabled(prefs.Channels.InApp) &&
		enabled(prefs.EventTypes[typ].InApp)
}

// ShouldSendEmailNotification сообщает, отправлять ли письмо. Помимо настроек
// действует ограничение: не чаще одного письма каждого типа в час.
// Ровно через час после предыдущего письма отправка снова разрешена.
func ShouldSendEmailNotification(prefs *models.NotificationPreferences, typ models.NotificationType, now time.Time) models.EmailDecision {
	if prefs == nil {
		return models.EmailDecision{Send: true}
	}
	if !enabled(prefs.Enabled) {
		return models.EmailDecision{Reason: "Notifications disabled"}
	}
	if !enabled(prefs.Channels.Email) {
		return models.EmailDecision{Reason: "Email channel disabled"}
	}
	if !enabled(prefs.EventTypes[typ].Email) {
		return models.EmailDecision{Reason: "Email disabled for " + string(typ)}
	}
	if last, ok := prefs.LastEmailSentAt[typ]; ok && now.Sub(last) < EmailRateLimit {
		return models.EmailDecision{Reason: reasonRateLimited}
	}
	return models.EmailDecision{Send: true}
}

// CanViewNotification проверяет право видеть уведомление пользователя ownerID.
func CanViewNotification(ctx models.AccessContext, ownerID string) models.AccessCheckResult {
	if !ctx.IsAuthenticated() {
		return access.SignInRequired()
	}
	if ctx.UserID == ownerID {
		return access.Grant(access.GetAccessLevel(ctx), access.ReasonNotificationOwner)
	}
	if access.IsAdminRole(ctx.Role) {
		return access.Grant(models.AccessFull, access.ReasonAdminAccess)
	}
	return access.Deny(access.ReasonNotificationNotOwner)
}

// CanManagePreferences проверяет право менять настройки уведомлений ownerID.
// Администратор чужие настройки не меняет.
func CanManagePreferences(ctx models.AccessContext, ownerID string) models.AccessCheckResult {
	if !ctx.IsAuthenticated() {
		return access.SignInRequired()
	}
	if ctx.UserID != ownerID {
		return access.Deny(access.ReasonPreferencesNotOwner)
	}
	return access.Grant(access.GetAccessLevel(ctx), access.ReasonNotificationOwner)
}

// RecordEmailSent возвращает копию настроек с отметкой об отправленном письме.
func RecordEmailSent(prefs *models.NotificationPreferences, typ models.NotificationType, at time.Time) *models.NotificationPreferences {
	out := models.NotificationPreferences{}
	if prefs != nil {
		out = *prefs
	}
	sent := make(map[models.NotificationType]time.Time, len(out.LastEmailSentAt)+1)
	for k, v := range out.LastEmailSentAt {
		sent[k] = v
	}
	sent[typ] = at
	out.LastEmailSentAt = sent
	return &out
}

func enabled(flag *bool) bool {
	return flag == nil || *flag
}
