package waypoint

import "errors"

var (
	ErrBadAny     = errors.New("bad value for any")
	ErrBadConfig  = errors.New("bad config")
	ErrBadFormat  = errors.New("bad format")
	ErrNotValid   = errors.New("invalid")
	ErrUnexpected = errors.New("unexpected")
)
