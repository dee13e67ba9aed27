package auth

import "errors"

var (
	ErrMissingToken = errors.New("missing access_token parameter")
	ErrNotValid     = errors.New("not valid")
	ErrRejected     = errors.New("access token rejected")
	ErrUnexpected   = errors.New("unexpected")
)

// A Rejection is an Authority refusing an access token for Reason.
type Rejection struct {
	Reason string
}

// Reject constructs a *Rejection.
func Reject(reason string) *Rejection { return &Rejection{Reason: reason} }

func (r *Rejection) Error() string { return ErrRejected.Error() + ": " + r.Reason }

// Is reports ErrRejected as the sentinel for every *Rejection.
func (r *Rejection) Is(target error) bool { return target == ErrRejected }
