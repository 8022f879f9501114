package models

import "time"

// AccessLogEntry — строка журнала доступа. Таблица только дополняется,
// старые строки удаляются заданием очистки.
type AccessLogEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Action       string    `json:"action"`
	Granted      bool      `json:"granted"`
	Reason       string    `json:"reason,omitempty"`
	IPAddress    string    `json:"ip_address,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccessStats — агрегированная статистика журнала доступа за период.
type AccessStats struct {
	Since          time.Time      `json:"since"`
	Total          int            `json:"total"`
	Granted        int            `json:"granted"`
	Denied         int            `json:"denied"`
	ByResourceType map[string]int `json:"by_resource_type"`
}
