// Package validation holds the pure field validators shared by the use cases.
// Validators trim their input and return the trimmed value together with any
// FieldValidationError, so callers never persist padded strings.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/coproptech/maintenance-service/internal/domain"
	"github.com/coproptech/maintenance-service/pkg/util"
)

// Length bounds count characters, not bytes.
const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 5000
	CommentMaxLen     = 2000
)

// TicketTitle validates and trims a ticket title.
func TicketTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", util.NewFieldValidation("title", "le titre est obligatoire")
	}
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return "", util.NewFieldValidation("title", fmt.Sprintf("le titre ne peut pas dépasser %d caractères", TitleMaxLen))
	}
	return title, nil
}

// TicketDescription validates and trims a ticket description.
func TicketDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if description == "" {
		return "", util.NewFieldValidation("description", "la description est obligatoire")
	}
	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		return "", util.NewFieldValidation("description", fmt.Sprintf("la description ne peut pas dépasser %d caractères", DescriptionMaxLen))
	}
	return description, nil
}

// CommentContent validates and trims comment content.
func CommentContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", util.NewFieldValidation("content", "le contenu du commentaire est obligatoire")
	}
	if utf8.RuneCountInString(content) > CommentMaxLen {
		return "", util.NewFieldValidation("content", fmt.Sprintf("le contenu du commentaire ne peut pas dépasser %d caractères", CommentMaxLen))
	}
	return content, nil
}

// TicketStatus checks enum membership.
func TicketStatus(raw domain.TicketStatus) (domain.TicketStatus, error) {
	if !domain.ValidTicketStatus(raw) {
		return "", util.NewFieldValidation("status", "statut invalide")
	}
	return raw, nil
}

// ID checks syntactic well-formedness of an entity identifier before any
// repository round trip.
func ID(field, raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if _, err := uuid.Parse(id); err != nil {
		return "", util.NewFieldValidation(field, "identifiant invalide")
	}
	return id, nil
}
