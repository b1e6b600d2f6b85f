package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "fathom/internal/platform/errors"
)

const (
	SchemaVersion   = 1
	MinContentRunes = 10
)

type Purpose string

const (
	PurposeDailyReflection Purpose = "daily-reflection"
	PurposeEventReflection Purpose = "event-reflection"
	PurposeReadingResource Purpose = "reading-resource"
)

// ParsePurpose defaults an empty value to daily reflection.
func ParsePurpose(raw string) (Purpose, error) {
	switch p := Purpose(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return PurposeDailyReflection, nil
	case PurposeDailyReflection, PurposeEventReflection, PurposeReadingResource:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unsupported purpose %q", apperrors.ErrInvalidInput, raw)
	}
}

type Role string

const (
	RoleBeginner Role = "beginner"
	RoleAmateur  Role = "amateur"
	RolePro      Role = "pro"
)

func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case "":
		return RoleBeginner, nil
	case RoleBeginner, RoleAmateur, RolePro:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unsupported role %q", apperrors.ErrInvalidInput, raw)
	}
}

// Entry is immutable once saved.
type Entry struct {
	ID        string
	Title     string
	Content   string
	Purpose   Purpose
	Role      Role
	Date      string
	CreatedAt time.Time
	UpdatedAt time.Time
	NotePath  string
}

func ValidateContent(content string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(content)); n < MinContentRunes {
		return fmt.Errorf("%w: need at least %d characters, got %d", apperrors.ErrContentTooShort, MinContentRunes, n)
	}
	return nil
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if err := ValidateContent(e.Content); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		return fmt.Errorf("created at is required")
	}
	return nil
}

// DisplayTitle falls back to the first words of the content for untitled entries.
func (e Entry) DisplayTitle() string {
	if t := strings.TrimSpace(e.Title); t != "" {
		return t
	}
	words := strings.Fields(e.Content)
	if len(words) > 6 {
		return strings.Join(words[:6], " ") + "…"
	}
	return strings.Join(words, " ")
}
