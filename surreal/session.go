package surreal

import (
	"context"
	"fmt"
	"sync"
)

// StatusOK marks a statement SurrealDB ran successfully.
const StatusOK = "OK"

// Result is the outcome of one statement of a query.
type Result struct {
	Status string
	Result any
	Error  string
}

// QueryFunc runs sql with vars, returning one Result per statement.
type QueryFunc func(ctx context.Context, sql string, vars map[string]any) ([]Result, error)

// A Session queries SurrealDB on behalf of one request.
//
// Sessions share the websocket of the Client they come from;
// releasing one only stops it from issuing further queries.
type Session struct {
	query QueryFunc

	mu       sync.Mutex
	release  func() error
	released bool
}

// NewSession constructs a *Session running queries through q.
// release, if not nil, is called by the first call to Release.
func NewSession(q QueryFunc, release func() error) *Session {
	return &Session{query: q, release: release}
}

// Query runs sql with vars and returns the result of every statement.
//
// If any statement failed, Query returns an error wrapping ErrQuery.
func (s *Session) Query(ctx context.Context, sql string, vars map[string]any) ([]any, error) {
	if s.Released() {
		return nil, ErrReleased
	}

	results, err := s.query(ctx, sql, vars)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(results))
	for _, r := range results {
		if r.Status != StatusOK {
			if r.Error != "" {
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error)
			}

			return nil, fmt.Errorf("%w: status %s", ErrQuery, r.Status)
		}

		out = append(out, r.Result)
	}

	return out, nil
}

// QueryOne runs sql with vars and returns the first record of the first statement.
// Scalar results return as is.
//
// If there is no record, QueryOne returns ErrNotFound.
func (s *Session) QueryOne(ctx context.Context, sql string, vars map[string]any) (any, error) {
	results, err := s.Query(ctx, sql, vars)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}

	records, ok := results[0].([]any)
	if !ok {
		return results[0], nil
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records[0], nil
}

// Execute runs sql with vars, discarding the results.
func (s *Session) Execute(ctx context.Context, sql string, vars map[string]any) error {
	_, err := s.Query(ctx, sql, vars)
	return err
}

// Release ends the session.
// Calls after the first do nothing.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil
	}

	s.released = true
	if s.release == nil {
		return nil
	}

	return s.release()
}

// Released asserts whether Release has been called.
func (s *Session) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.released
}
