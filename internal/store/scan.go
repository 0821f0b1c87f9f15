package store

import (
	"database/sql"
	"time"
)

// nullString stores empty strings as NULL for optional text columns.
func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

// now returns the current time at the precision PostgreSQL stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
