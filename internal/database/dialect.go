package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Harshitk-cp/casebook/internal/config"
	"github.com/jackc/pgx/v5"
)

// Dialect covers the SQL that differs between the supported engines.
// Queries are written with ? placeholders and passed through Rebind.
type Dialect interface {
	Name() string
	Rebind(query string) string
	// ResetSequenceSQL returns the statement that makes the next generated
	// id of table equal to 1.
	ResetSequenceSQL(table string) string
}

// DialectFor maps a profile client to its dialect. The knex client names
// pg, postgresql and sqlite3 are accepted as aliases.
func DialectFor(client string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(client)) {
	case "", config.ClientPostgres, "pg", "postgresql":
		return postgresDialect{}, nil
	case config.ClientSQLite, "sqlite3":
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedClient, client)
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return config.ClientPostgres }

func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (postgresDialect) ResetSequenceSQL(table string) string {
	return "ALTER SEQUENCE " + pgx.Identifier{table + "_id_seq"}.Sanitize() + " RESTART WITH 1"
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return config.ClientSQLite }

func (sqliteDialect) Rebind(query string) string { return query }

// ResetSequenceSQL clears the AUTOINCREMENT counter; with the table empty
// the next rowid is 1.
func (sqliteDialect) ResetSequenceSQL(table string) string {
	return "DELETE FROM sqlite_sequence WHERE name = '" + strings.ReplaceAll(table, "'", "''") + "'"
}
