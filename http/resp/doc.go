/*
Package resp writes JSON responses to HTTP requests.

Every request answered through a [Responder] gets exactly one body:
either the value a handler produced, or a [Fault] envelope.
Faults are written with status 200; clients branch on the code inside.
*/
package resp
