package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
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

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// IsUniqueViolation reports a postgres 23505, e.g. two exceptions for the
// same owner and date.
func IsUniqueViolation(err error) bool {
	_, ok := UniqueConstraint(err)
	return ok
}

// UniqueConstraint returns the index name behind a unique violation.
func UniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}
