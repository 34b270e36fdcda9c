package config

import (
	"net"
	"net/url"
)

// MaintenanceDatabase is the database connected to when the target database
// may not exist yet.
const MaintenanceDatabase = "postgres"

// DSN renders the descriptor as a postgres:// URL for the target database.
func (d DB) DSN() string {
	return d.toURL(d.Name).String()
}

// MaintenanceDSN is DSN pointed at the maintenance database.
func (d DB) MaintenanceDSN() string {
	return d.toURL(MaintenanceDatabase).String()
}

// Redacted is DSN with the password masked, for logs.
func (d DB) Redacted() string {
	return d.toURL(d.Name).Redacted()
}

func (d DB) toURL(database string) *url.URL {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, d.Port),
		Path:   "/" + database,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u
}
