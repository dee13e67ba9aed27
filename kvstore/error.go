package kvstore

import "errors"

var (
	ErrConnection = errors.New("cannot connect")
	ErrNotFound   = errors.New("not found")
	ErrReleased   = errors.New("connection released")
)
