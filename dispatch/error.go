package dispatch

import "errors"

var (
	// ErrNotFound is the cause of every path that does not lead to a handler method.
	ErrNotFound = errors.New("requested object does not exist")

	ErrMalformedPath = notFound("malformed path")
	ErrNoHandler     = notFound("no handler registered")
	ErrNoMethod      = notFound("no such method")

	ErrDuplicate = errors.New("already registered")
	ErrFactory   = errors.New("cannot construct handler")
	ErrPanic     = errors.New("handler panicked")
	ErrTimeout   = errors.New("handler timed out")
	ErrTxBegin   = errors.New("cannot begin transaction")
	ErrTxCommit  = errors.New("cannot commit transaction")
)

// notFoundErr is one of the causes of ErrNotFound.
type notFoundErr struct {
	msg string
}

func notFound(msg string) error { return &notFoundErr{msg: msg} }

func (e *notFoundErr) Error() string { return e.msg }

func (e *notFoundErr) Is(target error) bool { return target == ErrNotFound }
