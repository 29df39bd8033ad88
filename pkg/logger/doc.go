// Package logger builds the slog loggers used across the module.
//
//	log := logger.New(logger.Config{Level: "debug", SentryDSN: dsn},
//		logger.RequestIDExtractor(),
//		logger.ProviderExtractor(),
//	)
//
//	ctx = logger.WithProvider(ctx, "github")
//	log.WarnContext(ctx, "login failed", slog.String("error", err.Error()))
//	// {"level":"WARN","msg":"login failed","error":"...","provider":"github"}
//
// Without a DSN only the local handler is used. NewNope is the default for
// library code that was not given a logger.
package logger
