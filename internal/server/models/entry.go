package models

// Entry is a row of the entries table. ID is assigned by the database.
type Entry struct {
	ID   int64  `db:"Id"`
	Data string `db:"Data"`
}
