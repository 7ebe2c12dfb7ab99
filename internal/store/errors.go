package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/starford/notebase/internal/apperr"
)

// classify maps a driver error onto an apperr kind.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return apperr.New(apperr.KindConflict, op, err)
		default:
			return apperr.New(apperr.KindConstraint, op, err)
		}
	}
	return apperr.New(apperr.KindQuery, op, err)
}

func invalid(op string, err error) error {
	return apperr.New(apperr.KindInvalid, op, err)
}
