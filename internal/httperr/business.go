package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Business error codes used by the booking/settlement core.
const (
	CodeValidation          = "validation_error"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeInvalidState        = "invalid_state"
	CodeNoActiveAgreement   = "no_active_agreement"
	CodeOutOfCoverage       = "out_of_coverage"
	CodeInsufficientBalance = "insufficient_balance"
	CodeTooSoon             = "too_soon"
	CodeOutsideWorkingHours = "outside_working_hours"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsExclusionConflict reports whether err is a Postgres unique or
// exclusion constraint violation (23505/23P01), so a constraint-level
// conflict surfaces as slot_unavailable instead of a 500.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}
