/*
Package dispatch routes HTTP requests to handler methods by convention.

The path of a request names what answers it.
Its last segment is the method; the segments before it are a namespace key
under which a [Factory] was registered:

	/users/list       -> "users" (or "users/main"), method List
	/admin/users/get  -> "admin/users" (or "admin/users/main"), method Get

Handlers register themselves, usually from the init function of their package:

	func init() {
		dispatch.Register("users", func(s dispatch.Scope) (any, error) {
			return &Users{Base: dispatch.NewBase(s)}, nil
		})
	}

	type Users struct {
		dispatch.Base
	}

	func (u *Users) List(r *http.Request) (any, error) { ... }

A [Pipeline] runs each request through the same stages:
the access token is checked, the configured stores are opened,
the handler is constructed and its method looked up,
a transaction is opened if the handler requires one,
BeforeEach runs, then the method.
Whatever happens, the stores are released and exactly one JSON body is written.
*/
package dispatch
