/*
Package req parses the payload of an HTTP request into a struct and validates it.

It supports JSON-encoded payloads and payloads encoded in query parameters.
In both cases, package req expects to parse payloads into a pointer to a struct.
That struct ought to use "json" or "schema" struct tags to match keys in the payload to its fields,
and "validate" struct tags to state the requirements its data must meet.

Decoding failures translate to waypoint sentinel errors
so handlers see the same errors whatever the encoding.
Validation failures return as [ValidationErrors].
*/
package req
