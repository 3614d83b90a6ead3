package config

// Redis backs the catalog response cache and the purchase rate limiter.  A
// nil client disables both; the servers keep working without Redis.

import (
	"context"
	"crypto/tls"
	"log"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions builds client options from REDIS_ADDR, or REDIS_HOST plus
// REDIS_PORT when both are set, with REDIS_PASSWORD, REDIS_DB and
// REDIS_TLS.  The default address is localhost:6379.
func RedisOptions() *redis.Options {
	addr := envStr("REDIS_ADDR", "localhost:6379")
	if host, port := envStr("REDIS_HOST", ""), envStr("REDIS_PORT", ""); host != "" && port != "" {
		addr = net.JoinHostPort(host, port)
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: envStr("REDIS_PASSWORD", ""),
		DB:       envInt("REDIS_DB", 0),
	}
	if envBool("REDIS_TLS", false) {
		opts.TLSConfig = &tls.Config{ServerName: stripPort(addr)}
	}
	return opts
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// NewRedisClient connects with RedisOptions and pings the server.  It
// returns nil when REDIS_DISABLED is set or the ping fails, which turns the
// cache and the limiter into pass-throughs.
func NewRedisClient() *redis.Client {
	if envBool("REDIS_DISABLED", false) {
		return nil
	}
	opts := RedisOptions()
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis: ping %s failed: %v; cache and rate limit disabled", opts.Addr, err)
		_ = client.Close()
		return nil
	}
	return client
}
