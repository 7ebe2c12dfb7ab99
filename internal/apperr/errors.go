// Package apperr defines the failure kinds shared by the storage engine and
// its callers.
package apperr

import "errors"

// Kind classifies a failure so callers can branch on it without parsing text.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindIO means the data directory or database file could not be created or opened.
	KindIO
	// KindSchema means the startup schema batch failed.
	KindSchema
	// KindConflict means a create collided with an existing identifier.
	KindConflict
	// KindConstraint means a non-identity constraint rejected the row.
	KindConstraint
	// KindQuery covers malformed statements and stored values that do not scan.
	KindQuery
	// KindInvalid means input failed validation before any SQL ran.
	KindInvalid
	// KindNotFound is only reported by single-row reads. Update and delete
	// misses are not failures.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindSchema:
		return "schema"
	case KindConflict:
		return "conflict"
	case KindConstraint:
		return "constraint violation"
	case KindQuery:
		return "query"
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Op names the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match against another *Error of the same kind, so the
// sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// New wraps err with kind and op.
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

var (
	ErrIO         = &Error{Kind: KindIO}
	ErrSchema     = &Error{Kind: KindSchema}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrConstraint = &Error{Kind: KindConstraint}
	ErrQuery      = &Error{Kind: KindQuery}
	ErrInvalid    = &Error{Kind: KindInvalid}
	ErrNotFound   = &Error{Kind: KindNotFound}
)
