// Package config handles configuration for the server: defaults, an optional
// .env file, an optional JSON file, environment variables and command-line
// flags, applied in that order.
package config

import "time"

// DB is the connection descriptor for the PostgreSQL backend.
type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	// SSLMode is passed through as the sslmode parameter when set.
	SSLMode string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Config holds runtime settings for the server.
//
// Fields:
//   - ListenAddr: bind address of the HTTP listener.
//   - LogLevel: trace, debug, info, warn, error or critical.
//   - BootstrapStrict: stop the process when schema bootstrap fails instead
//     of serving with a possibly missing table.
//   - DB: connection descriptor and pool limits.
//   - *Timeout: net/http server timeouts and the graceful shutdown budget.
type Config struct {
	ListenAddr      string
	LogLevel        string
	BootstrapStrict bool
	DB              DB

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.LogLevel = "info"
	c.BootstrapStrict = false

	c.DB = DB{
		Host:            "localhost",
		Port:            "5432",
		User:            "user",
		Password:        "password",
		Name:            "db",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}

	c.ReadHeaderTimeout = 5 * time.Second
	c.ReadTimeout = 15 * time.Second
	c.WriteTimeout = 15 * time.Second
	c.IdleTimeout = 60 * time.Second
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then a .env file, a JSON
// file, environment variables and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
