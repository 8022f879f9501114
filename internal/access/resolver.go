package access

import "github.com/magabrotheeeer/talent-marketplace/internal/models"

// GetAccessLevel вычисляет уровень доступа только по роли и статусу подписки.
func GetAccessLevel(ctx models.AccessContext) models.AccessLevel {
	if IsAdminRole(ctx.Role) {
		return models.AccessFull
	}
	if IsSubscriberRole(ctx.Role) && HasPremiumSubscription(ctx.SubscriptionStatus) {
		return models.AccessPremium
	}
	return models.AccessPublic
}

// CheckPremiumAccess проверяет доступ к премиум-данным с указанием причины.
func CheckPremiumAccess(ctx models.AccessContext) models.AccessCheckResult {
	if IsAdminRole(ctx.Role) {
		return Grant(models.AccessFull, ReasonAdminAccess)
	}
	if !IsSubscriberRole(ctx.Role) {
		return Deny(ReasonAccountTypeNoPremium)
	}
	if !HasPremiumSubscription(ctx.SubscriptionStatus) {
		return DenySubscription(ctx.SubscriptionStatus)
	}
	return Grant(models.AccessPremium, ReasonActiveSubscription)
}

// CanAccessTalentPremiumData проверяет доступ к премиум-данным таланта.
// Свой профиль доступен всегда, независимо от роли и подписки.
func CanAccessTalentPremiumData(ctx models.AccessContext, talentUserID string) models.AccessCheckResult {
	if ctx.UserID != "" && ctx.UserID == talentUserID {
		return Grant(models.AccessFull, ReasonOwnProfile)
	}
	return CheckPremiumAccess(ctx)
}

// SubscriptionDenialReason выбирает причину отказа по статусу подписки,
// которая не даёт премиум-доступа.
func SubscriptionDenialReason(status models.SubscriptionStatus) ReasonCode {
	switch status {
	case models.SubscriptionNone:
		return ReasonSubscriptionRequired
	case models.SubscriptionCancelled:
		return ReasonSubscriptionCanceled
	case models.SubscriptionExpired:
		return ReasonSubscriptionExpired
	default:
		return ReasonSubscriptionInvalid
	}
}

// Grant формирует положительное решение.
func Grant(level models.AccessLevel, code ReasonCode) models.AccessCheckResult {
	return models.AccessCheckResult{
		Granted: true,
		Level:   level,
		Code:    code.String(),
		Reason:  code.Text(),
	}
}

// Deny формирует отказ с уровнем public.
func Deny(code ReasonCode) models.AccessCheckResult {
	return models.AccessCheckResult{
		Granted: false,
		Level:   models.AccessPublic,
		Code:    code.String(),
		Reason:  code.Text(),
	}
}

// DenySubscription формирует отказ из-за отсутствия премиум-подписки.
func DenySubscription(status models.SubscriptionStatus) models.AccessCheckResult {
	res := Deny(SubscriptionDenialReason(status))
	res.RequiresSubscription = true
	return res
}

// SignInRequired формирует отказ для неавторизованного пользователя.
func SignInRequired() models.AccessCheckResult {
	return Deny(ReasonSignInRequired)
}
