// Package messaging содержит проверки доступа к переписке.
//
// Начать диалог могут только профессионалы и компании и только с талантом.
// Таланты отвечают в существующих диалогах без подписки. Право
// администратора просматривать любой диалог не даёт права писать в него.
package messaging

import (
	"slices"

	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// Action — действие с диалогом.
type Action string

const (
	ActionInitiate Action = "initiate"
	ActionSend     Action = "send"
	ActionView     Action = "view"
)

// CanInitiateConversation проверяет право начать диалог с пользователем роли recipientRole.
func CanInitiateConversation(ctx models.AccessContext, recipientRole models.Role) models.MessagingAccess {
	if !ctx.IsAuthenticated() {
		return deny(access.ReasonSignInRequired)
	}
	if access.IsAdminRole(ctx.Role) {
		return allow(access.ReasonAdminAccess)
	}
	switch ctx.Role {
	case models.RoleTalent:
		return deny(access.ReasonTalentsOnlyReply)
	case models.RoleVisitor:
		return deny(access.ReasonVisitorCannotMessage)
	}
	if !access.IsSubscriberRole(ctx.Role) {
		return deny(access.ReasonAccessDenied)
	}
	if recipientRole != models.RoleTalent {
		return deny(access.ReasonOnlyMessageTalents)
	}
	if !access.HasPremiumSubscription(ctx.SubscriptionStatus) {
		return denySubscription(ctx.SubscriptionStatus)
	}
	return allow(access.ReasonActiveSubscription)
}

// CanSendMessage проверяет право написать в существующий диалог.
// Участие проверяется первым и для администраторов тоже.
func CanSendMessage(ctx models.AccessContext, participantIDs []string) models.MessagingAccess {
	if !ctx.IsAuthenticated() {
		return deny(access.ReasonSignInRequired)
	}
	if !IsParticipant(ctx.UserID, participantIDs) {
		return deny(access.ReasonNotParticipant)
	}
	if access.IsAdminRole(ctx.Role) {
		return allow(access.ReasonAdminAccess)
	}
	switch ctx.Role {
	case models.RoleTalent:
		return allow(access.ReasonTalentReply)
	case models.RoleVisitor:
		return deny(access.ReasonVisitorCannotMessage)
	}
	if !access.HasPremiumSubscription(ctx.SubscriptionStatus) {
		return denySubscription(ctx.SubscriptionStatus)
	}
	return allow(access.ReasonActiveSubscription)
}

// CanViewConversation проверяет право читать диалог.
func CanViewConversation(ctx models.AccessContext, participantIDs []string) models.AccessCheckResult {
	if !ctx.IsAuthenticated() {
		return access.SignInRequired()
	}
	if access.IsAdminRole(ctx.Role) {
		return access.Grant(models.AccessFull, access.ReasonAdminAccess)
	}
	if IsParticipant(ctx.UserID, participantIDs) {
		return access.Grant(access.GetAccessLevel(ctx), access.ReasonConversationParticipant)
	}
	return access.Deny(access.ReasonNotParticipant)
}

// IsParticipant сообщает, что userID входит в список участников.
func IsParticipant(userID string, participantIDs []string) bool {
	return userID != "" && slices.Contains(participantIDs, userID)
}

func allow(code access.ReasonCode) models.MessagingAccess {
	return models.MessagingAccess{CanSend: true, Code: code.String(), Reason: code.Text()}
}

func deny(code access.ReasonCode) models.MessagingAccess {
	return models.MessagingAccess{CanSend: false, Code: code.String(), Reason: code.Text()}
}

func denySubscription(status models.SubscriptionStatus) models.MessagingAccess {
	res := deny(access.SubscriptionDenialReason(status))
	res.RequiresSubscription = true
	return res
}
