// Package redis opens the shared Redis connection used when several
// instances must see the same OAuth1 request secrets and login sessions.
//
//	client, err := redis.Open(ctx, cfg.RedisURL,
//		redis.WithLogger(log),
//		redis.WithRetry(5, time.Second),
//	)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Healthcheck returns a probe suitable for a readiness endpoint.
package redis
