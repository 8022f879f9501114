// Package models содержит доменные структуры маркетплейса: роли, статусы
// подписки, контекст доступа и результаты проверок прав, а также сущности,
// которые сохраняются в хранилище (журнал доступа, запросы на контакт,
// уведомления).
package models

import "time"

// Role — роль пользователя платформы.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleProfessional Role = "PROFESSIONAL"
	RoleCompany      Role = "COMPANY"
	RoleTalent       Role = "TALENT"
	RoleVisitor      Role = "VISITOR"
)

// Roles возвращает все допустимые роли.
func Roles() []Role {
	return []Role{RoleAdmin, RoleProfessional, RoleCompany, RoleTalent, RoleVisitor}
}

// SubscriptionStatus — статус платной подписки пользователя.
type SubscriptionStatus string

const (
	SubscriptionNone      SubscriptionStatus = "NONE"
	SubscriptionTrial     SubscriptionStatus = "TRIAL"
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionPastDue   SubscriptionStatus = "PAST_DUE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
)

// SubscriptionStatuses возвращает все допустимые статусы подписки.
func SubscriptionStatuses() []SubscriptionStatus {
	return []SubscriptionStatus{
		SubscriptionNone,
		SubscriptionTrial,
		SubscriptionActive,
		SubscriptionPastDue,
		SubscriptionCancelled,
		SubscriptionExpired,
	}
}

// AccessLevel — уровень доступа к данным: full > premium > public.
type AccessLevel string

const (
	AccessPublic  AccessLevel = "public"
	AccessPremium AccessLevel = "premium"
	AccessFull    AccessLevel = "full"
)

func (l AccessLevel) rank() int {
	switch l {
	case AccessFull:
		return 2
	case AccessPremium:
		return 1
	default:
		return 0
	}
}

// AtLeast сообщает, что уровень l не ниже other.
func (l AccessLevel) AtLeast(other AccessLevel) bool {
	return l.rank() >= other.rank()
}

// ValidationStatus — статус проверки аккаунта профессионала модераторами.
type ValidationStatus string

const (
	ValidationPending  ValidationStatus = "PENDING"
	ValidationApproved ValidationStatus = "APPROVED"
	ValidationRejected ValidationStatus = "REJECTED"
)

// AccessContext — нормализованный контекст пользователя, собирается на каждый запрос.
type AccessContext struct {
	UserID             string             `json:"user_id"`
	Role               Role               `json:"role"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	SubscriptionEndsAt *time.Time         `json:"subscription_ends_at,omitempty"` // только для отображения
}

// IsAuthenticated сообщает, что запрос сделан вошедшим пользователем.
func (c AccessContext) IsAuthenticated() bool {
	return c.UserID != ""
}

// AccessCheckResult — неизменяемая запись решения о доступе.
type AccessCheckResult struct {
	Granted              bool        `json:"granted"`
	Level                AccessLevel `json:"level,omitempty"`
	Code                 string      `json:"code"`
	Reason               string      `json:"reason"`
	RequiresSubscription bool        `json:"requires_subscription,omitempty"`
}

// MessagingAccess — решение по отправке сообщений.
type MessagingAccess struct {
	CanSend              bool   `json:"can_send"`
	Code                 string `json:"code"`
	Reason               string `json:"reason"`
	RequiresSubscription bool   `json:"requires_subscription,omitempty"`
}

// ContactRequestAccess — решение по просмотру запроса на контакт и ответу на него.
type ContactRequestAccess struct {
	CanView    bool   `json:"can_view"`
	CanRespond bool   `json:"can_respond"`
	Code       string `json:"code"`
	Reason     string `json:"reason"`
}

// RateLimitResult — результат проверки дневного лимита запросов на контакт.
type RateLimitResult struct {
	Allowed   bool       `json:"allowed"`
	Remaining int        `json:"remaining"`
	ResetAt   *time.Time `json:"reset_at,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// ValidationResult — результат проверки пользовательского ввода.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// SubscriptionDisplayInfo — данные для отображения статуса подписки в интерфейсе.
type SubscriptionDisplayInfo struct {
	Label     string `json:"label"`
	Color     string `json:"color"`
	HasAccess bool   `json:"has_access"`
}
