// Package kvstore stores JSON documents in Redis on behalf of a single request.
package kvstore
