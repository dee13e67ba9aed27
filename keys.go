package waypoint

type Key string

const (
	// IdentityKey stashes the auth.Identity resolved for an HTTP request.
	IdentityKey Key = "IdentityKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled by waypoint.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "waypoint context key: " + string(k)
}
