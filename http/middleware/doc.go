/*
The middleware package defines what a middleware is in httpd and the middlewares a server runs.

The available middlewares are:
- AllowMethods
- InjectIPAddress
- LimitConcurrency
- LogRequest
- RateLimit
- ReportPanic
- RequestID

A server chains them in this order:

	adpts := []middleware.Adapter{
		middleware.ReportPanic(env, verbose, log),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.RateLimit(visitors, log),
		middleware.LimitConcurrency(cfg.MaxServerThreads(), log),
		middleware.AllowMethods(log, cfg.SupportedMethods()...),
	}
*/
package middleware
