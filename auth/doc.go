/*
Package auth guards dispatch behind an access token.

A [Guard] reads the access_token query parameter and asks an [Authority] who it belongs to.
Three Authorities are provided:

  - [JWTAuthority] validates HS256 signed JWTs; the subject is the caller's ID.
  - [RedisAuthority] looks tokens up in Redis, where an issuing service stored them.
  - [GoogleAuthority] resolves Google OAuth access tokens into the Google user.

An Authority refusing a token returns a [*Rejection].
The reason it carries is shown to the caller.
*/
package auth
