/*
Package config reads the settings of a waypoint app from environment variables.

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from;
cmd/waypoint loads it before calling [Load].

Here are the available environment variables.
  - ENVIRONMENT: the environment the application is running in; default: DEVELOPMENT; cf. [waypoint.Environment]
  - HOST: the host the application is running on; default: localhost
  - PORT: the port the application should listen on; default: 3000
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - SENTRY_DSN: when set, warnings and errors are reported to Sentry
  - ROUTER_PREFIX: the path prefix stripped before resolving handlers; default: none
  - TRANSACTION_MODE: whether handlers may ask for a database transaction; default: false
  - INVOKE_TIMEOUT: the deadline, as understood by [time.ParseDuration], for a handler to answer; default: 30s
  - METRICS_NAMESPACE: the namespace of exported Prometheus metrics; default: waypoint
  - AUTH_REQUIRED: whether every request must carry a valid access_token; default: false
  - AUTH_AUTHORITY: one of jwt, redis or google; default: jwt
  - JWT_KEY: the HMAC key verifying tokens with the jwt authority
  - GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET: the OAuth client used by the google authority
  - ACCESS_TOKEN_PREFIX: the key prefix tokens are stored under with the redis authority; default: access_token:
  - DATABASE_URL: the fully-qualified connection string for the database; replaces all other DATABASE_* env vars
  - DATABASE_HOST, DATABASE_PORT, DATABASE_NAME, DATABASE_USER, DATABASE_PASSWORD, DATABASE_SSLMODE
  - DATABASE_MAX_IDLE_CXNS, DATABASE_MAX_OPEN_CXNS
  - REDIS_URL: the redis:// URL of the key-value store; replaces REDIS_ADDR, REDIS_PASSWORD and REDIS_DB
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_POOL_SIZE
  - SURREAL_URL: the websocket endpoint of SurrealDB
  - SURREAL_NAMESPACE, SURREAL_DATABASE: default: waypoint
  - SURREAL_USER, SURREAL_PASSWORD
  - CORS_ORIGIN: comma separated origins allowed to make cross-origin requests
  - FORCE_HTTPS: redirect plain HTTP requests outside development; default: false
  - RATE_LIMIT, RATE_BURST: requests per second and burst allowed per IP address; default: 5, 20
  - SERVER_IDLE_TIMEOUT, SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT: default: 120s, 5s, 35s

A store is only connected to when it is configured.
See [Postgres.Configured], [Redis.Configured] and [Surreal.Configured].
*/
package config
