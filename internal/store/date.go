package store

import (
	"fmt"
	"time"
)

// dateColumn scans a DATE column. Postgres hands back a time.Time; SQLite
// may hand back the stored text.
type dateColumn struct {
	t *time.Time
}

func (d dateColumn) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d.t = v
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		*d.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
}

func (d dateColumn) parse(s string) error {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("scan date: %w", err)
	}
	*d.t = t
	return nil
}
