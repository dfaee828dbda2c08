package rdx

import (
	"os"
	"time"

	"munchmate/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxSetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

func RdxSetNX(key, value string, ttl time.Duration) (bool, error) {
	return Conn.SetNX(globals.Ctx, key, value, ttl).Result()
}

func RdxTTL(key string) (time.Duration, error) {
	return Conn.TTL(globals.Ctx, key).Result()
}

func Exists(key string) bool {
	n, err := Conn.Exists(globals.Ctx, key).Result()
	return err == nil && n > 0
}
