package domain

import (
	"errors"
	"testing"

	apperrors "fathom/internal/platform/errors"
)

func TestValidateContent(t *testing.T) {
	t.Parallel()
	cases := []struct {
		content string
		ok      bool
	}{
		{content: "", ok: false},
		{content: "   short   ", ok: false},
		{content: "123456789", ok: false},
		{content: "1234567890", ok: true},
		{content: "  日本語の日記を書きました  ", ok: true},
	}
	for _, tc := range cases {
		err := ValidateContent(tc.content)
		if tc.ok && err != nil {
			t.Fatalf("ValidateContent(%q) unexpected error: %v", tc.content, err)
		}
		if !tc.ok && !errors.Is(err, apperrors.ErrContentTooShort) {
			t.Fatalf("ValidateContent(%q) expected content too short, got %v", tc.content, err)
		}
	}
}

func TestParsePurposeAndRoleDefaults(t *testing.T) {
	t.Parallel()
	if p, err := ParsePurpose(""); err != nil || p != PurposeDailyReflection {
		t.Fatalf("empty purpose: got %q, %v", p, err)
	}
	if p, err := ParsePurpose(" Event-Reflection "); err != nil || p != PurposeEventReflection {
		t.Fatalf("mixed case purpose: got %q, %v", p, err)
	}
	if _, err := ParsePurpose("diary"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if r, err := ParseRole(""); err != nil || r != RoleBeginner {
		t.Fatalf("empty role: got %q, %v", r, err)
	}
	if _, err := ParseRole("expert"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestDisplayTitle(t *testing.T) {
	t.Parallel()
	if got := (Entry{Title: " Morning "}).DisplayTitle(); got != "Morning" {
		t.Fatalf("DisplayTitle() = %q", got)
	}
	got := (Entry{Content: "one two three four five six seven"}).DisplayTitle()
	if got != "one two three four five six…" {
		t.Fatalf("DisplayTitle() = %q", got)
	}
}

func TestPromptPolicy(t *testing.T) {
	t.Parallel()
	if RoleForFrequency("everyday") != RolePro || RoleForFrequency("every-2-days") != RoleAmateur || RoleForFrequency("once-a-week") != RoleBeginner {
		t.Fatalf("unexpected frequency mapping")
	}
	if n := len(PromptsForRole(RoleAmateur)); n != 3 {
		t.Fatalf("expected 3 amateur prompts, got %d", n)
	}

	short := Suggestions("Felt ok.", RoleBeginner)
	if len(short) != 3 || short[0] != "Try writing about specific details from your day" {
		t.Fatalf("short suggestions: %v", short)
	}
	long := Suggestions(string(make([]rune, 200)), RolePro)
	if len(long) != 3 || long[0] != "What insights can you draw from this experience?" {
		t.Fatalf("long suggestions: %v", long)
	}
}

func TestQuestionForDay(t *testing.T) {
	t.Parallel()
	pool := []string{"a", "b", "c"}
	if got := QuestionForDay(4, pool); got != "b" {
		t.Fatalf("QuestionForDay(4) = %q", got)
	}
	if got := QuestionForDay(3, pool); got != "a" {
		t.Fatalf("QuestionForDay(3) = %q", got)
	}
	if got := QuestionForDay(1, nil); got != "" {
		t.Fatalf("QuestionForDay with empty pool = %q", got)
	}
}
