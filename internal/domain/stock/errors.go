package stock

import (
	"fmt"

	"github.com/hotelstock/backend/internal/domain/shared"
)

// Error codes for the stock valuation and period close engine.
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeUnitConversion = "UNIT_CONVERSION_ERROR"
	ErrCodePeriodClose    = "PERIOD_CLOSE_ERROR"
	ErrCodeDataIntegrity  = "DATA_INTEGRITY_ERROR"
	ErrCodeConcurrency    = "CONCURRENCY_ERROR"
)

// NewValidationError reports an out-of-bounds or otherwise invalid counted value.
func NewValidationError(format string, args ...any) *shared.DomainError {
	return shared.NewDomainError(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// NewUnitConversionError reports an unrecognized item class or keg size.
func NewUnitConversionError(format string, args ...any) *shared.DomainError {
	return shared.NewDomainError(ErrCodeUnitConversion, fmt.Sprintf(format, args...))
}

// NewPeriodCloseError reports an unmet period-close precondition.
func NewPeriodCloseError(format string, args ...any) *shared.DomainError {
	return shared.NewDomainError(ErrCodePeriodClose, fmt.Sprintf(format, args...))
}

// NewDataIntegrityError reports a closed_at/reopened_at inconsistency.
// Integrity violations are surfaced to the caller, never auto-corrected.
func NewDataIntegrityError(format string, args ...any) *shared.DomainError {
	return shared.NewDomainError(ErrCodeDataIntegrity, fmt.Sprintf(format, args...))
}

// NewConcurrencyError reports a concurrent approval attempt on the same stocktake.
func NewConcurrencyError(format string, args ...any) *shared.DomainError {
	return shared.NewDomainError(ErrCodeConcurrency, fmt.Sprintf(format, args...))
}

// IsValidationError reports whether err is a VALIDATION_ERROR.
func IsValidationError(err error) bool { return shared.HasCode(err, ErrCodeValidation) }

// IsUnitConversionError reports whether err is a UNIT_CONVERSION_ERROR.
func IsUnitConversionError(err error) bool { return shared.HasCode(err, ErrCodeUnitConversion) }

// IsPeriodCloseError reports whether err is a PERIOD_CLOSE_ERROR.
func IsPeriodCloseError(err error) bool { return shared.HasCode(err, ErrCodePeriodClose) }

// IsDataIntegrityError reports whether err is a DATA_INTEGRITY_ERROR.
func IsDataIntegrityError(err error) bool { return shared.HasCode(err, ErrCodeDataIntegrity) }

// IsConcurrencyError reports whether err is a CONCURRENCY_ERROR.
func IsConcurrencyError(err error) bool { return shared.HasCode(err, ErrCodeConcurrency) }
