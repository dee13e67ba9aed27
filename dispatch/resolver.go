package dispatch

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Method is a handler method a request can invoke.
type Method func(*http.Request) (any, error)

var methodType = reflect.TypeOf(Method(nil))

// hooks are exported handler methods that are never invoked by path.
var hooks = map[string]bool{
	"BeforeEach":         true,
	"RequireTransaction": true,
}

// A Resolver maps request paths to handler methods.
type Resolver struct {
	prefix string
	reg    *Registry
}

// NewResolver constructs a *Resolver looking handlers up in reg.
// If reg is nil, DefaultRegistry is used.
//
// A prefix not starting with "/" has one prepended.
func NewResolver(reg *Registry, prefix string) *Resolver {
	if reg == nil {
		reg = DefaultRegistry
	}

	prefix = strings.TrimSuffix(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	return &Resolver{prefix: prefix, reg: reg}
}

// Prefix returns the normalized prefix r strips from paths.
func (r *Resolver) Prefix() string { return r.prefix }

// Parse splits path into the namespace key and method name it addresses.
//
// The prefix is removed once, only from the start of path.
// What remains must have at least two non-empty segments;
// the last one names the method and the others the namespace.
func (r *Resolver) Parse(path string) (key, method string, err error) {
	if r.prefix != "" && strings.HasPrefix(path, r.prefix) {
		rest := path[len(r.prefix):]
		if rest == "" || rest[0] == '/' {
			path = rest
		}
	}

	pieces := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(pieces) < 2 {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedPath, path)
	}

	for _, p := range pieces {
		if p == "" {
			return "", "", fmt.Errorf("%w: %q", ErrMalformedPath, path)
		}
	}

	last := len(pieces) - 1
	return strings.Join(pieces[:last], "/"), pieces[last], nil
}

// Resolve constructs the handler the request of s addresses
// and returns it together with the name of the method to invoke.
//
// Errors caused by the path wrap ErrNotFound.
func (r *Resolver) Resolve(s Scope) (any, string, error) {
	h, _, method, _, err := r.resolve(s)
	return h, method, err
}

// resolve is Resolve additionally returning the registered key and the bound method.
func (r *Resolver) resolve(s Scope) (any, string, string, Method, error) {
	key, method, err := r.Parse(s.Request.URL.Path)
	if err != nil {
		return nil, "", "", nil, err
	}

	f, key, err := r.reg.Lookup(key)
	if err != nil {
		return nil, "", "", nil, err
	}

	h, err := f(s)
	if err != nil {
		return nil, key, "", nil, fmt.Errorf("%w %q: %w", ErrFactory, key, err)
	}

	if h == nil {
		return nil, key, "", nil, fmt.Errorf("%w %q: factory returned nil", ErrFactory, key)
	}

	fn, err := lookupMethod(h, method)
	if err != nil {
		return nil, key, "", nil, err
	}

	return h, key, method, fn, nil
}

// lookupMethod finds the exported Method on h that name addresses.
func lookupMethod(h any, name string) (Method, error) {
	exported := exportedName(name)
	if exported == "" || hooks[exported] {
		return nil, fmt.Errorf("%w: %T.%s", ErrNoMethod, h, name)
	}

	m := reflect.ValueOf(h).MethodByName(exported)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %T.%s", ErrNoMethod, h, exported)
	}

	if !m.Type().ConvertibleTo(methodType) {
		return nil, fmt.Errorf("%w: %T.%s is %s", ErrNoMethod, h, exported, m.Type())
	}

	return m.Convert(methodType).Interface().(Method), nil
}

// exportedName upper cases the first letter of name,
// e.g., "list" becomes "List" and "getList" becomes "GetList".
func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return ""
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
