package core

import (
	"errors"
	"fmt"
)

// Validation errors are user-correctable and raised before anything is written.
var (
	ErrCodesBothNull          = errors.New("Codes and Generate Codes From can not both be null")   //nolint:staticcheck // user facing message
	ErrCodesMutuallyExclusive = errors.New("Codes and Generate Codes From are mutually exclusive") //nolint:staticcheck // user facing message
	ErrCodeCountMismatch      = errors.New("number of codes is not equal to number of books")
	ErrInvalidCondition       = errors.New("unknown condition")
	ErrInvalidBookingStatus   = errors.New("unknown booking status")
	ErrInvalidMemberRole      = errors.New("unknown member role")
	ErrUnknownUserRef         = errors.New("unknown user reference")
	ErrNumberOfBooksRequired  = errors.New("number of books must be positive")

	ErrGenerateCodesFromTooLarge = fmt.Errorf("generate codes from must not exceed %d", MaxGenerateCodesFrom)
)

// ErrPolicyNotConfigured is a constraint error: a default date is needed but no policy settings exist.
var ErrPolicyNotConfigured = errors.New("library policy is not configured")

// CodeCountMismatchError reports an explicit code list whose length differs from the number of books.
type CodeCountMismatchError struct {
	Codes int
	Books uint
}

func (e CodeCountMismatchError) Error() string {
	return fmt.Sprintf("Number of codes (%d) is not equal to number of books (%d)!", e.Codes, e.Books)
}

// Is makes errors.Is(err, ErrCodeCountMismatch) match.
func (e CodeCountMismatchError) Is(target error) bool {
	return target == ErrCodeCountMismatch
}

// IsValidationError reports whether err is a user-correctable validation error.
func IsValidationError(err error) bool {
	for _, validationErr := range []error{
		ErrCodesBothNull,
		ErrCodesMutuallyExclusive,
		ErrCodeCountMismatch,
		ErrInvalidCondition,
		ErrInvalidBookingStatus,
		ErrInvalidMemberRole,
		ErrUnknownUserRef,
		ErrNumberOfBooksRequired,
		ErrGenerateCodesFromTooLarge,
	} {
		if errors.Is(err, validationErr) {
			return true
		}
	}

	return false
}
