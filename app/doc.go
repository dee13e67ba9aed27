/*
Package app assembles a waypoint app from a [config.Config].

[New] connects to every configured store, picks the authority validating access tokens,
and mounts the dispatch pipeline under the configured prefix
behind request ids, IP address injection, request logging, metrics, CORS and rate limiting.
Prometheus metrics are served at /metrics.

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := a.Run(); err != nil {
		log.Fatal(err)
	}

[*App.Run] listens until it receives a shutdown signal or the context passed with [WithContext] is cancelled.
[*App.Shutdown] then stops the web server and closes every store pool.

Handlers are resolved from [dispatch.DefaultRegistry] unless [WithRegistry] says otherwise;
importing a package registering handlers in its init is enough to expose them.
*/
package app
