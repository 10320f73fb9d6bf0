package scan

import "errors"

// ErrorKind distinguishes the failure classes surfaced at the boundary.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota // catch-all, e.g. cancelled input acquisition
	KindIO                       // content acquisition failed
	KindJSON                     // malformed JSON text
	KindSQL                      // malformed DDL or no CREATE TABLE first
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindJSON:
		return "json"
	case KindSQL:
		return "sql"
	default:
		return "generic"
	}
}

// Error is a kind-tagged failure. It collapses to a single human-readable
// string via Error(); callers that need the taxonomy use KindOf.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

func IOError(err error) *Error { return &Error{Kind: KindIO, Err: err} }

func JSONError(err error) *Error {
	return &Error{Kind: KindJSON, Msg: "JSON parsing error", Err: err}
}

func SQLError(err error) *Error {
	return &Error{Kind: KindSQL, Msg: "SQL parsing error", Err: err}
}

func Generic(msg string) *Error { return &Error{Kind: KindGeneric, Msg: msg} }

// KindOf returns the ErrorKind of err, or KindGeneric when err carries no
// taxonomy.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}
