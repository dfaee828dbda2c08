package globals

import (
	"context"
	"os"
)

var JwtSecret = []byte(EnvOr("JWT_SECRET", "change_me_in_production"))

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()

// EnvOr returns the environment value for key, or def when unset.
func EnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
