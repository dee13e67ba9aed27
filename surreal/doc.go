/*
Package surreal queries SurrealDB.

One [Client] is connected per process.
Requests each take a [Session] from it with [Client.Acquire]
and call [Session.Release] when done.
*/
package surreal
