package resp

import "fmt"

// Codes set in a Fault, telling clients what went wrong.
const (
	// CodeFault marks any failure that is not about the access token.
	CodeFault = 10001

	// CodeAccessToken marks a missing or rejected access token.
	CodeAccessToken = 20001
)

// Fault messages.
const (
	// MsgNotFound is the Fault message when no handler answers the requested path.
	MsgNotFound = "bad parameters: requested object does not exist"

	// MsgNotValid is the Fault message when a request payload fails validation.
	MsgNotValid = "bad parameters: payload failed validation"
)

const msgAccessToken = "access token is not valid"

// A Fault is the envelope written in place of a handler's result when a request fails.
//
// A *Fault is also an error, so handlers can return one to choose the envelope themselves.
type Fault struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Result any    `json:"result,omitempty"`
}

// NewFault constructs a general *Fault carrying msg.
func NewFault(msg string) *Fault {
	return &Fault{Code: CodeFault, Msg: msg}
}

// NewAccessTokenFault constructs a *Fault for an access token that is missing or was rejected for reason.
func NewAccessTokenFault(reason string) *Fault {
	if reason == "" {
		reason = msgAccessToken
	}

	return &Fault{Code: CodeAccessToken, Msg: reason}
}

// Error formats f as an error message.
func (f *Fault) Error() string {
	return fmt.Sprintf("fault %d: %s", f.Code, f.Msg)
}
