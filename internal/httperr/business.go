package httperr

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Business error codes surfaced verbatim to the caller. They are
// expected, retryable outcomes and are never logged as errors.
const (
	CodeSlotUnavailable   = "slot_unavailable"
	CodeInvalidTransition = "invalid_transition"
)

type BusinessError struct {
	Code string
	Meta map[string]any
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrSlotUnavailable names the barber and the rejected window so the
// caller can present an actionable message.
func ErrSlotUnavailable(barberID uint, start, end time.Time) error {
	return BusinessError{
		Code: CodeSlotUnavailable,
		Meta: map[string]any{
			"barber_id": barberID,
			"start":     start,
			"end":       end,
		},
	}
}

func ErrInvalidTransition(from, to string) error {
	return BusinessError{
		Code: CodeInvalidTransition,
		Meta: map[string]any{
			"from": from,
			"to":   to,
		},
	}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// IsExclusionConflict reports whether err is a Postgres exclusion
// constraint violation (SQLSTATE 23P01). The appointments table carries
// an exclusion constraint over active windows as a backstop for the
// advisory-lock path, and a violation means the slot was taken.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}
