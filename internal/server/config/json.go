package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/entrycounter/internal/flagx"
	"github.com/dmitrijs2005/entrycounter/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON configuration file. Durations
// accept "15s"-style strings or integer nanoseconds. Omitted fields leave the
// current value untouched.
type JsonConfig struct {
	ListenAddr      string `json:"listen_addr"`
	LogLevel        string `json:"log_level"`
	BootstrapStrict *bool  `json:"bootstrap_strict"`

	DB struct {
		Host            string         `json:"host"`
		Port            string         `json:"port"`
		User            string         `json:"user"`
		Password        string         `json:"password"`
		Name            string         `json:"name"`
		SSLMode         string         `json:"sslmode"`
		MaxOpenConns    *int           `json:"max_open_conns"`
		MaxIdleConns    *int           `json:"max_idle_conns"`
		ConnMaxLifetime timex.Duration `json:"conn_max_lifetime"`
	} `json:"db"`

	ReadHeaderTimeout timex.Duration `json:"read_header_timeout"`
	ReadTimeout       timex.Duration `json:"read_timeout"`
	WriteTimeout      timex.Duration `json:"write_timeout"`
	IdleTimeout       timex.Duration `json:"idle_timeout"`
	ShutdownTimeout   timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c/-config into config. Without the flag
// nothing happens. An unreadable file or invalid JSON panics: the operator
// asked for that file explicitly.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	dur := func(dst *time.Duration, v timex.Duration) {
		if v.Duration > 0 {
			*dst = v.Duration
		}
	}
	num := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}

	str(&config.ListenAddr, c.ListenAddr)
	str(&config.LogLevel, c.LogLevel)
	if c.BootstrapStrict != nil {
		config.BootstrapStrict = *c.BootstrapStrict
	}

	str(&config.DB.Host, c.DB.Host)
	str(&config.DB.Port, c.DB.Port)
	str(&config.DB.User, c.DB.User)
	str(&config.DB.Password, c.DB.Password)
	str(&config.DB.Name, c.DB.Name)
	str(&config.DB.SSLMode, c.DB.SSLMode)
	num(&config.DB.MaxOpenConns, c.DB.MaxOpenConns)
	num(&config.DB.MaxIdleConns, c.DB.MaxIdleConns)
	dur(&config.DB.ConnMaxLifetime, c.DB.ConnMaxLifetime)

	dur(&config.ReadHeaderTimeout, c.ReadHeaderTimeout)
	dur(&config.ReadTimeout, c.ReadTimeout)
	dur(&config.WriteTimeout, c.WriteTimeout)
	dur(&config.IdleTimeout, c.IdleTimeout)
	dur(&config.ShutdownTimeout, c.ShutdownTimeout)
}
