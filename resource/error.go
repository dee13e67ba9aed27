package resource

import "errors"

var (
	ErrProvision = errors.New("cannot provision store")
	ErrRelease   = errors.New("cannot release store")
)
