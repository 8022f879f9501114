package models

import "time"

// ContactRequestStatus — состояние запроса на контакт с талантом.
type ContactRequestStatus string

const (
	ContactRequestPending  ContactRequestStatus = "PENDING"
	ContactRequestApproved ContactRequestStatus = "APPROVED"
	ContactRequestDeclined ContactRequestStatus = "DECLINED"
)

// ContactRequest — запрос профессионала или компании на контакт с талантом.
type ContactRequest struct {
	ID           string               `json:"id"`
	RequesterID  string               `json:"requester_id"`
	TalentUserID string               `json:"talent_user_id"`
	ProjectName  string               `json:"project_name,omitempty"`
	Purpose      string               `json:"purpose"`
	Message      string               `json:"message,omitempty"`
	Status       ContactRequestStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	RespondedAt  *time.Time           `json:"responded_at,omitempty"`
}

// ContactRequestInput — данные для создания запроса на контакт.
type ContactRequestInput struct {
	TalentUserID string `json:"talent_user_id" validate:"required"`
	ProjectName  string `json:"project_name,omitempty" validate:"omitempty,max=200"`
	Purpose      string `json:"purpose" validate:"required"`
	Message      string `json:"message,omitempty"`
}
