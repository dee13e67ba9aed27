package surreal

import "errors"

var (
	ErrConnection = errors.New("cannot connect")
	ErrNotFound   = errors.New("not found")
	ErrQuery      = errors.New("query failed")
	ErrReleased   = errors.New("session released")
)
