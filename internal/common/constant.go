// Package common contains shared constants and sentinel errors used across
// entrycounter components.
package common

// EntriesTable is the name of the single table the service writes to.
const EntriesTable = "entries"

// StatusUp is the liveness value reported by the status endpoint.
const StatusUp = "UP"
