package core

import (
	"strconv"
	"strings"

	"github.com/mikietechie/sapp-library/lendingstore"
)

const codesSeparator = ","

// MaxGenerateCodesFrom is the largest start value a generated code sequence may have.
const MaxGenerateCodesFrom = 32767

// ValidateCodes checks how the codes of a restock action are given.
//
// Exactly one of Codes and GenerateCodesFrom must be set. An explicit list must hold
// one code per book. A generated sequence is not checked against existing copies here;
// the unique (book, code) constraint of the store rejects collisions.
func ValidateCodes(action lendingstore.RestockAction) error {
	hasCodes := action.Codes != nil && *action.Codes != ""
	hasSequence := action.GenerateCodesFrom != nil

	switch {
	case !hasCodes && !hasSequence:
		return ErrCodesBothNull
	case hasCodes && hasSequence:
		return ErrCodesMutuallyExclusive
	}

	if hasSequence && *action.GenerateCodesFrom > MaxGenerateCodesFrom {
		return ErrGenerateCodesFromTooLarge
	}

	if hasCodes {
		if count := len(splitCodes(*action.Codes)); uint(count) != action.NumberOfBooks {
			return CodeCountMismatchError{Codes: count, Books: action.NumberOfBooks}
		}
	}

	return nil
}

// ValidateRestock runs ValidateCodes and then checks the remaining fields of the action.
func ValidateRestock(action lendingstore.RestockAction) error {
	if err := ValidateCodes(action); err != nil {
		return err
	}

	if action.NumberOfBooks == 0 {
		return ErrNumberOfBooksRequired
	}

	if !action.Condition.IsValid() {
		return ErrInvalidCondition
	}

	return nil
}

// PlanRestock builds the copies a validated restock action produces, one per code,
// each coded "{prefix}-{code}" and carrying the action's condition and attribution.
func PlanRestock(action lendingstore.RestockAction) ([]lendingstore.BookItem, error) {
	if err := ValidateRestock(action); err != nil {
		return nil, err
	}

	codes := effectiveCodes(action)
	items := make([]lendingstore.BookItem, 0, len(codes))

	for _, code := range codes {
		items = append(items, lendingstore.BookItem{
			BookID:    action.BookID,
			Code:      action.Prefix + "-" + code,
			Condition: action.Condition,
			Available: lendingstore.ComputeAvailability(0),
			CreatedBy: action.CreatedBy,
			UpdatedBy: action.UpdatedBy,
		})
	}

	return items, nil
}

func effectiveCodes(action lendingstore.RestockAction) []string {
	if action.Codes != nil && *action.Codes != "" {
		return splitCodes(*action.Codes)
	}

	from := *action.GenerateCodesFrom
	codes := make([]string, 0, action.NumberOfBooks)

	for i := uint(0); i < action.NumberOfBooks; i++ {
		codes = append(codes, strconv.FormatUint(uint64(from)+uint64(i), 10))
	}

	return codes
}

// splitCodes splits on commas and trims the surrounding blanks of each code. Empty entries are kept.
func splitCodes(codes string) []string {
	parts := strings.Split(codes, codesSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}
