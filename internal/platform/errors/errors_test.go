package apperrors_test

import (
	"fmt"
	"testing"

	apperrors "fathom/internal/platform/errors"
)

func TestClassification(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("%w: need 100, have 40", apperrors.ErrInsufficientXP)
	if !apperrors.IsRejection(wrapped) || apperrors.IsValidation(wrapped) {
		t.Fatalf("insufficient xp must be a rejection only")
	}
	short := fmt.Errorf("create entry: %w", apperrors.ErrContentTooShort)
	if !apperrors.IsValidation(short) || apperrors.IsRejection(short) {
		t.Fatalf("content too short must be a validation error only")
	}
	if apperrors.IsValidation(apperrors.ErrStoreUnavailable) || apperrors.IsRejection(apperrors.ErrStoreUnavailable) {
		t.Fatalf("store unavailable is neither validation nor rejection")
	}
}
