package util

import (
	"database/sql"
	"time"
)

// StringToNullString converts a string to sql.NullString; empty strings map
// to NULL.
func StringToNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// TimeToNullTime converts a time to sql.NullTime; the zero time maps to NULL.
func TimeToNullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
