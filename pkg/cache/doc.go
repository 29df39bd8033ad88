// Package cache provides the short-lived key-value storage used by the
// authentication flows: OAuth1 request-token secrets, Apple client-secret
// JWTs and login sessions.
//
// Two backends implement Cache: Memory for a single process and Redis when
// several instances serve the same callback URLs.
//
//	secrets := cache.NewMemory[string](cache.MemoryConfig{CleanupInterval: time.Minute})
//	_ = secrets.Set(ctx, token, secret, 10*time.Minute)
//	secret, err := secrets.Take(ctx, token) // single use
//
// GetOrSet deduplicates concurrent computations of the same key:
//
//	jwt, err := cache.GetOrSet(ctx, c, "apple:"+clientID, func(ctx context.Context) (string, time.Duration, error) {
//		return sign(ctx)
//	})
package cache
