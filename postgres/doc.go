/*
Package postgres manages connections to a PostgreSQL database through GORM.

A [Pool] is opened once per process with [Connect].
Each request pins one connection out of it with [Pool.Acquire]
and must hand it back with [Conn.Release].

Queries are built with the [DB] a [Conn] exposes.
When a [Tx] is open on the Conn, those queries run inside it.
*/
package postgres
