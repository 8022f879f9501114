package contactrequests

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

const (
	// PurposeMinLength — минимальная длина цели запроса после обрезки пробелов.
	PurposeMinLength = 50
	// PurposeMaxLength — максимальная длина цели запроса.
	PurposeMaxLength = 2000
	// MessageMaxLength — максимальная длина сопроводительного сообщения.
	MessageMaxLength = 5000
	// ProjectNameMaxLength — максимальная длина названия проекта.
	ProjectNameMaxLength = 200
)

// ValidateContactRequestInput проверяет ввод запроса на контакт.
// Длина считается в символах, а не в байтах.
func ValidateContactRequestInput(requesterID string, in models.ContactRequestInput) models.ValidationResult {
	talentID := strings.TrimSpace(in.TalentUserID)
	if talentID == "" {
		return invalid("Talent is required")
	}
	if talentID == requesterID {
		return invalid("You cannot send a contact request to yourself")
	}

	purposeLen := utf8.RuneCountInString(strings.TrimSpace(in.Purpose))
	if purposeLen < PurposeMinLength {
		return invalid(fmt.Sprintf("Purpose must be at least %d characters", PurposeMinLength))
	}
	if purposeLen > PurposeMaxLength {
		return invalid(fmt.Sprintf("Purpose must be at most %d characters", PurposeMaxLength))
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.ProjectName)) > ProjectNameMaxLength {
		return invalid(fmt.Sprintf("Project name must be at most %d characters", ProjectNameMaxLength))
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Message)) > MessageMaxLength {
		return invalid(fmt.Sprintf("Message must be at most %d characters", MessageMaxLength))
	}

	return models.ValidationResult{Valid: true}
}

func invalid(reason string) models.ValidationResult {
	return models.ValidationResult{Valid: false, Reason: reason}
}
