package access

// ReasonCode — стабильный код причины решения. Тексты, привязанные к кодам,
// видны пользователю и проверяются клиентами по подстрокам, поэтому
// менять их можно только вместе с версией контракта.
type ReasonCode string

const (
	ReasonAdminAccess          ReasonCode = "admin_access"
	ReasonActiveSubscription   ReasonCode = "active_subscription"
	ReasonOwnProfile           ReasonCode = "own_profile"
	ReasonAccountTypeNoPremium ReasonCode = "account_type_no_premium"
	ReasonSubscriptionRequired ReasonCode = "subscription_required"
	ReasonSubscriptionCanceled ReasonCode = "subscription_cancelled"
	ReasonSubscriptionExpired  ReasonCode = "subscription_expired"
	ReasonSubscriptionInvalid  ReasonCode = "subscription_invalid"
	ReasonSignInRequired       ReasonCode = "sign_in_required"

	ReasonCollectionOwner        ReasonCode = "collection_owner"
	ReasonCollectionCreateRole   ReasonCode = "collection_create_role"
	ReasonCollectionViewRole     ReasonCode = "collection_view_role"
	ReasonCollectionEditNotOwner ReasonCode = "collection_edit_not_owner"
	ReasonCollectionDelNotOwner  ReasonCode = "collection_delete_not_owner"
	ReasonCollectionShareNotOwn  ReasonCode = "collection_share_not_owner"
	ReasonCollectionExportNotOwn ReasonCode = "collection_export_not_owner"

	ReasonConversationParticipant ReasonCode = "conversation_participant"
	ReasonNotParticipant          ReasonCode = "not_participant"
	ReasonTalentsOnlyReply        ReasonCode = "talents_only_reply"
	ReasonTalentReply             ReasonCode = "talent_reply"
	ReasonVisitorCannotMessage    ReasonCode = "visitor_cannot_message"
	ReasonOnlyMessageTalents      ReasonCode = "only_message_talents"

	ReasonContactRequestRole      ReasonCode = "contact_request_role"
	ReasonValidationPending       ReasonCode = "validation_pending"
	ReasonValidationRejected      ReasonCode = "validation_rejected"
	ReasonContactRequestAllowed   ReasonCode = "contact_request_allowed"
	ReasonContactRequestRequester ReasonCode = "contact_request_requester"
	ReasonContactRequestTalent    ReasonCode = "contact_request_talent"
	ReasonContactRequestNoAccess  ReasonCode = "contact_request_no_access"
	ReasonAlreadyResponded        ReasonCode = "already_responded"
	ReasonNotRequestTalent        ReasonCode = "not_request_talent"
	ReasonRateLimitReached        ReasonCode = "rate_limit_reached"

	ReasonNotificationOwner    ReasonCode = "notification_owner"
	ReasonNotificationNotOwner ReasonCode = "notification_not_owner"
	ReasonPreferencesNotOwner  ReasonCode = "preferences_not_owner"

	ReasonAccessDenied ReasonCode = "access_denied"
)

var reasonTexts = map[ReasonCode]string{
	ReasonAdminAccess:          "Admin access",
	ReasonActiveSubscription:   "Active subscription",
	ReasonOwnProfile:           "Viewing own profile",
	ReasonAccountTypeNoPremium: "Your account type does not have access to premium data",
	ReasonSubscriptionRequired: "A subscription is required to access this feature",
	ReasonSubscriptionCanceled: "Your subscription has been cancelled. Please resubscribe to regain access",
	ReasonSubscriptionExpired:  "Your subscription has expired. Please renew to regain access",
	ReasonSubscriptionInvalid:  "A valid subscription is required to access this feature",
	ReasonSignInRequired:       "Please sign in to continue",

	ReasonCollectionOwner:        "Collection owner",
	ReasonCollectionCreateRole:   "Only professionals and companies can create collections",
	ReasonCollectionViewRole:     "Your account type cannot view other users' collections",
	ReasonCollectionEditNotOwner: "You can only edit your own collections",
	ReasonCollectionDelNotOwner:  "You can only delete your own collections",
	ReasonCollectionShareNotOwn:  "You can only share your own collections",
	ReasonCollectionExportNotOwn: "You can only export your own collections",

	ReasonConversationParticipant: "Conversation participant",
	ReasonNotParticipant:          "You are not a participant in this conversation",
	ReasonTalentsOnlyReply:        "Talents can only reply to existing conversations",
	ReasonTalentReply:             "Talents can reply to conversations they are part of",
	ReasonVisitorCannotMessage:    "Visitors cannot send messages",
	ReasonOnlyMessageTalents:      "You can only message talents",

	ReasonContactRequestRole:      "Only professionals and companies can send contact requests",
	ReasonValidationPending:       "Your account is pending validation. Contact requests are available once it is approved",
	ReasonValidationRejected:      "Your account validation was rejected. Contact requests are not available",
	ReasonContactRequestAllowed:   "Contact request allowed",
	ReasonContactRequestRequester: "You sent this request",
	ReasonContactRequestTalent:    "This request was sent to you",
	ReasonContactRequestNoAccess:  "You do not have access to this contact request",
	ReasonAlreadyResponded:        "This request has already been responded to",
	ReasonNotRequestTalent:        "Only the talent who received this request can respond",
	ReasonRateLimitReached:        "Rate limit reached. Please wait before sending more contact requests",

	ReasonNotificationOwner:    "Notification owner",
	ReasonNotificationNotOwner: "You can only view your own notifications",
	ReasonPreferencesNotOwner:  "You can only manage your own notification preferences",

	ReasonAccessDenied: "Access denied",
}

// Text возвращает отображаемый текст причины.
func (c ReasonCode) Text() string {
	if t, ok := reasonTexts[c]; ok {
		return t
	}
	return reasonTexts[ReasonAccessDenied]
}

func (c ReasonCode) String() string {
	return string(c)
}
