package quadrant

import "errors"

var (
	// ErrInvalidInput reports a malformed request that is not a financial or score problem
	ErrInvalidInput = errors.New("invalid input")

	// ErrWrongPeriodCount reports a historical series not of length 2 or a projected series not of length 3
	ErrWrongPeriodCount = errors.New("wrong period count")

	// ErrInvalidFinancialInput reports a non-positive denominator or price
	ErrInvalidFinancialInput = errors.New("invalid financial input")

	// ErrScoreOutOfRange reports a qualitative score outside [1,4]
	ErrScoreOutOfRange = errors.New("score out of range")
)

// IsValidationError reports whether err was caused by bad caller input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrWrongPeriodCount) ||
		errors.Is(err, ErrInvalidFinancialInput) ||
		errors.Is(err, ErrScoreOutOfRange)
}
