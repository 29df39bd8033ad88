// Package middlewares provides net/http middleware for the socialauth server.
//
// Every middleware has the chi shape func(http.Handler) http.Handler, so it
// can be passed to chi's Router.Use or combined with Chain:
//
//	h := middlewares.Chain(mux,
//		middlewares.CORS(middlewares.WithAllowOrigins("https://app.example.com"), middlewares.WithAllowCredentials()),
//		middlewares.RequestID(),
//		middlewares.Recover(middlewares.WithRecoverLogger(log)),
//		middlewares.Timeout(30*time.Second),
//	)
//
// RequestID stores the ID with logger.WithRequestID; build the logger with
// logger.RequestIDExtractor to get request_id on every record.
package middlewares
