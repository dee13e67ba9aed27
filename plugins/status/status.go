// Package status registers the status handler,
// answering whether a waypoint app is up and which stores it reaches.
//
// Import it for its side effect:
//
//	import _ "github.com/xy-planning-network/waypoint/plugins/status"
package status

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xy-planning-network/waypoint/dispatch"
	"github.com/xy-planning-network/waypoint/http/resp"
)

const (
	// Key is the namespace path the status handler is registered under.
	Key = "status"

	// ProbeHeader optionally names the kind of probe calling the handler.
	ProbeHeader = "X-Status-Probe"
)

var probes = map[string]bool{
	"":          true,
	"liveness":  true,
	"readiness": true,
}

func init() { dispatch.Register(Key, New) }

// A Handler answers status requests.
type Handler struct {
	dispatch.Base
	probe string
}

// New constructs a *Handler for the request in s.
func New(s dispatch.Scope) (any, error) {
	return &Handler{Base: dispatch.NewBase(s), probe: s.Request.Header.Get(ProbeHeader)}, nil
}

// BeforeEach refuses probes it does not know.
func (h *Handler) BeforeEach(_ context.Context, _ string) error {
	if !probes[strings.ToLower(h.probe)] {
		return resp.NewFault(fmt.Sprintf("unknown probe %q", h.probe))
	}

	return nil
}

// Ping answers {"ok":true}.
func (h *Handler) Ping(*http.Request) (any, error) { return map[string]bool{"ok": true}, nil }

// Now answers the time according to the database.
func (h *Handler) Now(r *http.Request) (any, error) {
	db := h.DB()
	if db == nil {
		return nil, resp.NewFault("no relational store configured")
	}

	var row struct{ Now time.Time }
	if err := db.Raw(&row, "SELECT now() AS now"); err != nil {
		return nil, err
	}

	return map[string]time.Time{"now": row.Now}, nil
}

type echo struct {
	Say string `json:"say" schema:"say" validate:"required,max=64"`
}

// Echo answers what the caller said,
// either in the say query param of a GET or in the JSON body of any other request.
func (h *Handler) Echo(r *http.Request) (any, error) {
	var e echo
	parse := h.ParseBody
	if r.Method == http.MethodGet {
		parse = h.ParseQuery
	}

	if err := parse(&e); err != nil {
		return nil, err
	}

	return e, nil
}

// Stores answers which stores the request was provisioned with.
func (h *Handler) Stores(*http.Request) (any, error) {
	return map[string]bool{
		"relational": h.DB() != nil,
		"kv":         h.KV() != nil,
		"docs":       h.Docs() != nil,
	}, nil
}
