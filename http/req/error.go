package req

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xy-planning-network/waypoint"
)

// A ValidationError names a payload field whose value breaks a rule.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

// ValidationErrors lists every field of a payload that failed validation.
// It unwraps to waypoint.ErrNotValid.
type ValidationErrors []ValidationError

// Error joins one line per failure.
func (v ValidationErrors) Error() string {
	var b strings.Builder
	for i, ve := range v {
		if i > 0 {
			b.WriteByte('\n')
		}

		fmt.Fprintf(&b, "%s: got %v, want %s", ve.Field, ve.Got, ve.Rule)
	}

	return b.String()
}

// MarshalJSON nests the failures under "validationErrors",
// which is how clients find them in the result of a fault.
func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Errs []ValidationError `json:"validationErrors"`
	}{Errs: []ValidationError(v)})
}

func (ValidationErrors) Unwrap() error { return waypoint.ErrNotValid }
