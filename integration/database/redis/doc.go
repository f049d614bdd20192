// Package redis provides Redis client initialization, health checking and a
// Redis-backed session store.
//
// # Connecting
//
// Connect validates the URL, opens a go-redis client and pings it with
// retries before returning:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Configuration is read from the environment:
//
//	REDIS_URL              redis://localhost:6379/0 (rediss:// for TLS)
//	REDIS_RETRY_ATTEMPTS   3
//	REDIS_RETRY_INTERVAL   5s
//	REDIS_CONNECT_TIMEOUT  30s
//	REDIS_SCAN_BATCH_SIZE  1000
//
// # Health Checking
//
// Healthcheck returns a probe suitable for health.Readiness:
//
//	health.Check{Name: "redis", Fn: redis.Healthcheck(client)}
//
// # Session Store
//
// SessionStore implements session.Store. Sessions are stored as JSON under
// session:<id> with a session:token:<token> index key, and both keys carry
// the session's remaining lifetime as their TTL:
//
//	store := redis.NewSessionStore[Data](client, redis.WithScanBatchSize(cfg.ScanBatchSize))
//	manager := session.NewManager[Data](store)
//
// The session Data type must round-trip through encoding/json.
package redis
