package dispatch_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/dispatch"
	"github.com/xy-planning-network/waypoint/logger"
)

type restock struct {
	SKU string `json:"sku" schema:"sku" validate:"required"`
	Qty int    `json:"qty" schema:"qty" validate:"gte=1"`
}

// orders parses its payload from the body or the query params.
type orders struct{ dispatch.Base }

func (o *orders) Restock(*http.Request) (any, error) {
	var in restock
	if err := o.ParseBody(&in); err != nil {
		return nil, err
	}

	return in, nil
}

func (o *orders) Lookup(*http.Request) (any, error) {
	var in restock
	if err := o.ParseQuery(&in); err != nil {
		return nil, err
	}

	return in, nil
}

func TestBaseParse(t *testing.T) {
	tcs := []struct {
		name     string
		method   string
		target   string
		body     string
		expected string
		outcome  string
	}{
		{
			name:     "Body",
			method:   http.MethodPost,
			target:   "/orders/restock",
			body:     `{"sku":"sprocket","qty":4}`,
			expected: `{"sku":"sprocket","qty":4}`,
			outcome:  dispatch.OutcomeOK,
		},
		{
			name:     "Body-Invalid",
			method:   http.MethodPost,
			target:   "/orders/restock",
			body:     `{"qty":0}`,
			expected: `{"code":10001,"msg":"bad parameters: payload failed validation","result":{"validationErrors":[{"field":"sku","got":"","rule":"required"},{"field":"qty","got":0,"rule":"gte=1"}]}}`,
			outcome:  dispatch.OutcomeShortCircuit,
		},
		{
			name:     "Body-Garbled",
			method:   http.MethodPost,
			target:   "/orders/restock",
			body:     `{"sku"`,
			expected: `{"code":10001,"msg":"bad format: failed decoding request body: unexpected EOF"}`,
			outcome:  dispatch.OutcomeFault,
		},
		{
			name:     "Query",
			method:   http.MethodGet,
			target:   "/orders/lookup?sku=sprocket&qty=2&access_token=abc",
			expected: `{"sku":"sprocket","qty":2}`,
			outcome:  dispatch.OutcomeOK,
		},
		{
			name:     "Query-Not-A-Number",
			method:   http.MethodGet,
			target:   "/orders/lookup?sku=sprocket&qty=lots",
			expected: `{"code":10001,"msg":"bad parameters: payload failed validation","result":{"validationErrors":[{"field":"qty","got":"lots","rule":"must be int"}]}}`,
			outcome:  dispatch.OutcomeShortCircuit,
		},
		{
			name:     "Query-Invalid",
			method:   http.MethodGet,
			target:   "/orders/lookup?qty=3",
			expected: `{"code":10001,"msg":"bad parameters: payload failed validation","result":{"validationErrors":[{"field":"sku","got":"","rule":"required"}]}}`,
			outcome:  dispatch.OutcomeShortCircuit,
		},
	}

	reg := dispatch.NewRegistry()
	require.Nil(t, reg.Register("orders", func(s dispatch.Scope) (any, error) {
		return &orders{dispatch.NewBase(s)}, nil
	}))

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			obs := new(harness)
			obs.t = t
			p := dispatch.NewPipeline(
				dispatch.NewResolver(reg, ""),
				dispatch.WithLogger(logger.New(logger.WithLogger(log.New(new(bytes.Buffer), "", 0)))),
				dispatch.WithObserver(obs),
			)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))

			// Act
			p.ServeHTTP(w, r)

			// Assert
			require.JSONEq(t, tc.expected, w.Body.String())
			require.Equal(t, outcome{"orders", tc.outcome}, obs.lastOutcome())
		})
	}
}
