package dispatch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/dispatch"
)

type widgets struct {
	dispatch.Base
}

func (widgets) List(*http.Request) (any, error)   { return "list", nil }
func (widgets) GetList(*http.Request) (any, error) { return "getList", nil }
func (widgets) Helper() string                     { return "helper" }
func (widgets) count(*http.Request) (any, error)   { return 0, nil }

func newWidgets(s dispatch.Scope) (any, error) { return widgets{dispatch.NewBase(s)}, nil }

func scope(target string) dispatch.Scope {
	return dispatch.Scope{Request: httptest.NewRequest(http.MethodGet, target, nil)}
}

func TestResolverParse(t *testing.T) {
	tcs := []struct {
		name   string
		prefix string
		path   string
		key    string
		method string
		err    error
	}{
		{"Two-Segments", "", "/users/list", "users", "list", nil},
		{"Nested", "", "/admin/users/get", "admin/users", "get", nil},
		{"One-Segment", "", "/a", "", "", dispatch.ErrMalformedPath},
		{"Root", "", "/", "", "", dispatch.ErrMalformedPath},
		{"Empty-Segment", "", "/users//list", "", "", dispatch.ErrMalformedPath},
		{"Trailing-Slash", "", "/users/list/", "", "", dispatch.ErrMalformedPath},
		{"Prefix", "/api", "/api/users/list", "users", "list", nil},
		{"Prefix-Without-Slash", "api", "/api/users/list", "users", "list", nil},
		{"Prefix-Only-Once", "/api", "/api/api/list", "api", "list", nil},
		{"Prefix-Anchored", "/api", "/users/api/list", "users/api", "list", nil},
		{"Prefix-Partial-Segment", "/api", "/apix/list", "apix", "list", nil},
		{"Prefix-Leaves-One", "/api", "/api/list", "", "", dispatch.ErrMalformedPath},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := dispatch.NewResolver(dispatch.NewRegistry(), tc.prefix)

			// Act
			key, method, err := r.Parse(tc.path)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.err != nil {
				require.ErrorIs(t, err, dispatch.ErrNotFound)
			}
			require.Equal(t, tc.key, key)
			require.Equal(t, tc.method, method)
		})
	}
}

func TestNewResolverPrefix(t *testing.T) {
	require.Equal(t, "/api", dispatch.NewResolver(nil, "api").Prefix())
	require.Equal(t, "/api", dispatch.NewResolver(nil, "/api/").Prefix())
	require.Equal(t, "", dispatch.NewResolver(nil, "").Prefix())
}

func TestResolverResolve(t *testing.T) {
	reg := dispatch.NewRegistry()
	require.Nil(t, reg.Register("widgets", newWidgets))
	require.Nil(t, reg.Register("/admin/main/", newWidgets))

	tcs := []struct {
		name   string
		target string
		method string
		err    error
	}{
		{"Found", "/widgets/list", "list", nil},
		{"Camel-Case", "/widgets/getList", "getList", nil},
		{"Already-Exported", "/widgets/List", "List", nil},
		{"Main-Fallback", "/admin/list", "list", nil},
		{"No-Handler", "/gadgets/list", "", dispatch.ErrNoHandler},
		{"No-Method", "/widgets/delete", "", dispatch.ErrNoMethod},
		{"Wrong-Signature", "/widgets/helper", "", dispatch.ErrNoMethod},
		{"Unexported", "/widgets/count", "", dispatch.ErrNoMethod},
		{"Hook", "/widgets/beforeEach", "", dispatch.ErrNoMethod},
		{"Hook-Transaction", "/widgets/requireTransaction", "", dispatch.ErrNoMethod},
		{"Not-A-Name", "/widgets/1st", "", dispatch.ErrNoMethod},
		{"Base-Accessor", "/widgets/dB", "", dispatch.ErrNoMethod},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := dispatch.NewResolver(reg, "")

			// Act
			h, method, err := r.Resolve(scope(tc.target))

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.method, method)
			if tc.err != nil {
				require.ErrorIs(t, err, dispatch.ErrNotFound)
				require.Nil(t, h)
				return
			}

			require.IsType(t, widgets{}, h)
		})
	}
}

func TestResolverResolveIdempotent(t *testing.T) {
	// Arrange
	reg := dispatch.NewRegistry()
	require.Nil(t, reg.Register("widgets", newWidgets))
	r := dispatch.NewResolver(reg, "/api")

	// Act
	_, first, err := r.Resolve(scope("/api/widgets/getList"))
	require.Nil(t, err)
	_, second, err := r.Resolve(scope("/api/widgets/getList"))
	require.Nil(t, err)

	// Assert
	require.Equal(t, first, second)
}

func TestResolverResolveFactory(t *testing.T) {
	// Arrange
	var calls int
	reg := dispatch.NewRegistry()
	require.Nil(t, reg.Register("bad", func(dispatch.Scope) (any, error) {
		calls++
		return nil, errors.New("no dice")
	}))
	require.Nil(t, reg.Register("nil", func(dispatch.Scope) (any, error) { calls++; return nil, nil }))
	r := dispatch.NewResolver(reg, "")

	// Act
	_, _, errBad := r.Resolve(scope("/bad/list"))
	_, _, errNil := r.Resolve(scope("/nil/list"))
	_, _, errShort := r.Resolve(scope("/bad"))

	// Assert
	require.ErrorIs(t, errBad, dispatch.ErrFactory)
	require.NotErrorIs(t, errBad, dispatch.ErrNotFound)
	require.ErrorIs(t, errNil, dispatch.ErrFactory)
	require.ErrorIs(t, errShort, dispatch.ErrMalformedPath)
	require.Equal(t, 2, calls)
}

func TestRegistryRegister(t *testing.T) {
	// Arrange
	reg := dispatch.NewRegistry()

	// Act
	errFirst := reg.Register("widgets", newWidgets)
	errDup := reg.Register("/widgets/", newWidgets)
	errEmpty := reg.Register("/", newWidgets)
	errNil := reg.Register("gadgets", nil)

	// Assert
	require.Nil(t, errFirst)
	require.ErrorIs(t, errDup, dispatch.ErrDuplicate)
	require.NotNil(t, errEmpty)
	require.ErrorIs(t, errNil, dispatch.ErrFactory)
	require.Equal(t, []string{"widgets"}, reg.Keys())
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	// Arrange
	key := "dispatch-test/widgets"
	dispatch.Register(key, newWidgets)

	// Act + Assert
	require.Panics(t, func() { dispatch.Register(key, newWidgets) })
}

func TestBase(t *testing.T) {
	// Arrange
	b := dispatch.NewBase(scope("/widgets/list"))

	// Act + Assert
	require.Nil(t, b.BeforeEach(context.Background(), "list"))
	require.Nil(t, b.RequireTransaction())
	require.Nil(t, b.DB())
	require.Nil(t, b.KV())
	require.Nil(t, b.Docs())
	require.Equal(t, "", b.UserID())
}
