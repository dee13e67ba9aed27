// Package resource opens the stores one request uses and releases them when it is done.
package resource
