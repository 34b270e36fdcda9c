package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDBHost          = "DB_HOST"
	EnvDBPort          = "DB_PORT"
	EnvDBUser          = "DB_USER"
	EnvDBPass          = "DB_PASS"
	EnvDBName          = "DB_NAME"
	EnvDBSSLMode       = "DB_SSLMODE"
	EnvListenAddr      = "LISTEN_ADDR"
	EnvLogLevel        = "LOG_LEVEL"
	EnvBootstrapStrict = "BOOTSTRAP_STRICT"
)

// loadDotEnv copies variables from the given files (default ".env") into the
// process environment. Missing files are ignored and variables that are
// already set are never overridden.
func loadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// parseEnv overlays configuration from environment variables. Unset or empty
// variables keep the current value; a malformed BOOTSTRAP_STRICT is ignored.
func parseEnv(config *Config) {
	setString(&config.DB.Host, EnvDBHost)
	setString(&config.DB.Port, EnvDBPort)
	setString(&config.DB.User, EnvDBUser)
	setString(&config.DB.Password, EnvDBPass)
	setString(&config.DB.Name, EnvDBName)
	setString(&config.DB.SSLMode, EnvDBSSLMode)
	setString(&config.ListenAddr, EnvListenAddr)
	setString(&config.LogLevel, EnvLogLevel)

	if v, ok := lookup(EnvBootstrapStrict); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.BootstrapStrict = b
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
