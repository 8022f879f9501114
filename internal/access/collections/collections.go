// Package collections содержит проверки доступа к коллекциям талантов,
// которые ведут профессионалы и компании.
//
// Владелец всегда может просматривать свою коллекцию. Изменение, удаление,
// публикация и экспорт требуют активной подписки даже у владельца: при
// истёкшей подписке коллекция доступна только для чтения.
package collections

import (
	"github.com/magabrotheeeer/talent-marketplace/internal/access"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

// Action — действие над коллекцией.
type Action string

const (
	ActionCreate Action = "create"
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionShare  Action = "share"
	ActionExport Action = "export"
)

// CanCreateCollection проверяет право создать коллекцию.
func CanCreateCollection(ctx models.AccessContext) models.AccessCheckResult {
	if !ctx.IsAuthenticated() {
		return access.SignInRequired()
	}
	if access.IsAdminRole(ctx.Role) {
		return access.Grant(models.AccessFull, access.ReasonAdminAccess)
	}
	if !access.IsSubscriberRole(ctx.Role) {
		return access.Deny(access.ReasonCollectionCreateRole)
	}
	if !access.HasPremiumSubscription(ctx.SubscriptionStatus) {
		return access.DenySubscription(ctx.SubscriptionStatus)
	}
	return access.Grant(models.AccessPremium, access.ReasonActiveSubscription)
}

// CanViewCollection проверяет право просмотра коллекции ownerID.
func CanViewCollection(ctx models.AccessContext, ownerID string) models.AccessCheckResult {
	if !ctx.IsAuthenticated() {
		return access.SignInRequired()
	}
	if access.IsAdminRole(ctx.Role) {
		return access.Grant(models.AccessFull, access.ReasonAdminAccess)
	}
	if ctx.UserID == ownerID {
		return access.Grant(access.GetAccessLevel(ctx), access.ReasonCollectionOwner)
	}
	if !access.IsSubscriberRole(ctx.Role) {
		return access.Deny(access.ReasonCollectionViewRole)
	}
	if !access.HasPremiumSubscription(ctx.SubscriptionStatus) {
		return access.DenySubscription(ctx.SubscriptionStatus)
	}
	return access.Grant(models.AccessPremium, access.ReasonActiveSubscription)
}

// CanEditCollection проверяет право изменять коллекцию.
func CanEditCollection(ctx models.AccessContext, ownerID string) models.AccessCheckResult {
	return ownerAction(ctx, ownerID, access.ReasonCollectionEditNotOwner)
}

// CanDeleteCollection проверяет право удалить коллекцию.
func CanDeleteCollection(ctx models.AccessContext, ownerID string) models.AccessCheckResult {
	return ownerAction(ctx, ownerID, access.ReasonCollectionDelNotOwner)
}

// CanShareCollection проверяет право поделиться коллекцией.
func CanShareCollection(ctx models.AccessContext, ownerID string) models.AccessCheckResult {
	return ownerAction(ctx, ownerID, access.ReasonCollectionShareNotOwn)
}

// CanExportCollection проверяет право экспортировать коллекцию.
func CanExportCollection(ctx models.AccessContext, ownerID string) models.AccessCheckResult {
	return ownerAction(ctx, ownerID, access.ReasonCollectionExportNotOwn)
}

// Check выбирает проверку по действию. Для неизвестного действия — отказ.
func Check(ctx models.AccessContext, action Action, ownerID string) models.AccessCheckResult {
	switch action {
	case ActionCreate:
		return CanCreateCollection(ctx)
	case ActionView:
		return CanViewCollection(ctx, ownerID)
	case ActionEdit:
		return CanEditCollection(ctx, ownerID)
	case ActionDelete:
		return CanDeleteCollection(ctx, ownerID)
	case ActionShare:
		return CanShareCollection(ctx, ownerID)
	case ActionExport:
		return CanExportCollection(ctx, ownerID)
	default:
		return access.Deny(access.ReasonAccessDenied)
	}
}

// ownerAction — общая проверка действий, доступных только владельцу с подпиской.
func ownerAction(ctx models.AccessContext, ownerID string, notOwner access.ReasonCode) models.AccessCheckResult {
	if !ctx.IsAuthenticated() {
		return access.SignInRequired()
	}
	if access.IsAdminRole(ctx.Role) {
		return access.Grant(models.AccessFull, access.ReasonAdminAccess)
	}
	if ctx.UserID != ownerID {
		return access.Deny(notOwner)
	}
	if !access.HasPremiumSubscription(ctx.SubscriptionStatus) {
		return access.DenySubscription(ctx.SubscriptionStatus)
	}
	return access.Grant(models.AccessPremium, access.ReasonCollectionOwner)
}
