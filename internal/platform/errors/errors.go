package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrContentTooShort = errors.New("content too short")
	ErrInvalidDuration = errors.New("invalid journey duration")
	ErrUnknownMaterial = errors.New("unknown material")
	ErrInvalidGoal     = errors.New("invalid goal")

	ErrInsufficientXP      = errors.New("insufficient experience")
	ErrAlreadyOwned        = errors.New("material already owned")
	ErrRecoveryUnavailable = errors.New("streak recovery unavailable")
	ErrMaterialLocked      = errors.New("material locked")
	ErrModuleDisabled      = errors.New("module disabled")
	ErrAlreadyAnswered     = errors.New("daily question already answered")

	ErrNoActiveChat     = errors.New("no active chat")
	ErrActiveChatExists = errors.New("active chat already exists")
)

// IsValidation reports whether err is a user input problem that should be shown, not retried.
func IsValidation(err error) bool {
	for _, target := range []error{ErrInvalidInput, ErrContentTooShort, ErrInvalidDuration, ErrUnknownMaterial, ErrInvalidGoal} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsRejection reports whether err is a business-rule refusal of an otherwise valid request.
func IsRejection(err error) bool {
	for _, target := range []error{ErrInsufficientXP, ErrAlreadyOwned, ErrRecoveryUnavailable, ErrMaterialLocked, ErrModuleDisabled, ErrAlreadyAnswered, ErrActiveChatExists} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
