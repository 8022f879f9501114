package models

import "time"

// NotificationType — тип события, о котором уведомляется пользователь.
type NotificationType string

const (
	NotificationMessage                NotificationType = "MESSAGE"
	NotificationContactRequest         NotificationType = "CONTACT_REQUEST"
	NotificationContactRequestResponse NotificationType = "CONTACT_REQUEST_RESPONSE"
	NotificationCollectionShared       NotificationType = "COLLECTION_SHARED"
	NotificationSubscription           NotificationType = "SUBSCRIPTION"
	NotificationSystem                 NotificationType = "SYSTEM"
)

// Notification — уведомление внутри приложения.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Link      string           `json:"link,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// ChannelPreferences — включённость каналов доставки. nil означает «не задано»,
// что трактуется как «отправлять».
type ChannelPreferences struct {
	InApp *bool `json:"inApp,omitempty"`
	Email *bool `json:"email,omitempty"`
}

// NotificationPreferences — сохранённые настройки уведомлений пользователя.
type NotificationPreferences struct {
	Enabled         *bool                                   `json:"enabled,omitempty"`
	Channels        ChannelPreferences                      `json:"channels"`
	EventTypes      map[NotificationType]ChannelPreferences `json:"eventTypes,omitempty"`
	LastEmailSentAt map[NotificationType]time.Time          `json:"lastEmailSentAt,omitempty"`
}

// EmailDecision — решение об отправке письма.
type EmailDecision struct {
	Send   bool   `json:"send"`
	Reason string `json:"reason,omitempty"`
}

// EmailJob — сообщение в очереди на отправку письма.
type EmailJob struct {
	NotificationID string           `json:"notification_id"`
	UserID         string           `json:"user_id"`
	Email          string           `json:"email"`
	Type           NotificationType `json:"type"`
	Subject        string           `json:"subject"`
	Body           string           `json:"body"`
}
