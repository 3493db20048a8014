package token

import (
	"os"
	"strconv"
	"time"
)

// Config holds the signing configuration shared by all token purposes.
type Config struct {
	Secret    string        // SECRET_KEY: HMAC signing secret
	Algorithm string        // ALGORITHM: JWT algorithm, e.g. HS256
	AccessTTL time.Duration // ACCESS_TOKEN_EXPIRE_MINUTES: access token lifetime
}

// Default lifetimes for the verification and reset token purposes.
const (
	DefaultVerifyTTL = 24 * time.Hour
	DefaultResetTTL  = time.Hour
)

// LoadConfig loads the token configuration from environment variables.
func LoadConfig() Config {
	alg := os.Getenv("ALGORITHM")
	if alg == "" {
		alg = "HS256"
	}

	minutes := 60
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			minutes = n
		}
	}

	return Config{
		Secret:    os.Getenv("SECRET_KEY"),
		Algorithm: alg,
		AccessTTL: time.Duration(minutes) * time.Minute,
	}
}
