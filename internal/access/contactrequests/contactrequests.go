// Package contactrequests содержит правила для запросов на контакт с талантами:
// кто может их отправлять, просматривать и на них отвечать, проверку ввода
// и дневной лимит ожидающих запросов.
package contactrequests

import (
	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// CanCreateContactRequest проверяет право отправить запрос на контакт.
// Нужны роль PROFESSIONAL или COMPANY, премиум-подписка и одобренный аккаунт.
// Администраторы запросы не отправляют.
func CanCreateContactRequest(ctx models.AccessContext, validation models.ValidationStatus) models.AccessCheckResult {
	if !ctx.IsAuthenticated() {
		return access.SignInRequired()
	}
	if !access.IsSubscriberRole(ctx.Role) {
		return access.Deny(access.ReasonContactRequestRole)
	}
	if !access.HasPremiumSubscription(ctx.SubscriptionStatus) {
		return access.DenySubscription(ctx.SubscriptionStatus)
	}
	switch validation {
	case models.ValidationApproved:
		return access.Grant(models.AccessPremium, access.ReasonContactRequestAllowed)
	case models.ValidationRejected:
		return access.Deny(access.ReasonValidationRejected)
	default:
		return access.Deny(access.ReasonValidationPending)
	}
}

// CanViewContactRequest проверяет право просмотра запроса и ответа на него.
// Отправитель только смотрит, адресат-талант смотрит и отвечает, пока запрос
// ожидает ответа, администратор только смотрит.
func CanViewContactRequest(ctx models.AccessContext, req models.ContactRequest) models.ContactRequestAccess {
	if !ctx.IsAuthenticated() {
		return view(false, false, access.ReasonSignInRequired)
	}
	if access.IsAdminRole(ctx.Role) {
		return view(true, false, access.ReasonAdminAccess)
	}
	if ctx.UserID == req.TalentUserID {
		return view(true, req.Status == models.ContactRequestPending, access.ReasonContactRequestTalent)
	}
	if ctx.UserID == req.RequesterID {
		return view(true, false, access.ReasonContactRequestRequester)
	}
	return view(false, false, access.ReasonContactRequestNoAccess)
}

// CanRespondToContactRequest проверяет право ответить на запрос.
// На уже обработанный запрос ответить нельзя никому.
func CanRespondToContactRequest(ctx models.AccessContext, req models.ContactRequest) models.AccessCheckResult {
	if !ctx.IsAuthenticated() {
		return access.SignInRequired()
	}
	if req.Status != models.ContactRequestPending {
		return access.Deny(access.ReasonAlreadyResponded)
	}
	if ctx.UserID != req.TalentUserID {
		return access.Deny(access.ReasonNotRequestTalent)
	}
	return access.Grant(access.GetAccessLevel(ctx), access.ReasonContactRequestTalent)
}

func view(canView, canRespond bool, code access.ReasonCode) models.ContactRequestAccess {
	return models.ContactRequestAccess{
		CanView:    canView,
		CanRespond: canRespond,
		Code:       code.String(),
		Reason:     code.Text(),
	}
}
