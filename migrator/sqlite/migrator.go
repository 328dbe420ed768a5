package sqlite

import (
	"database/sql"
	"embed"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

// SqlFiles holds the schema of the bot: groups, members, the roster tables
// and the winner ledger. Scripts are named <version>_<description>.sql.
//
//go:embed sql/*.sql
var SqlFiles embed.FS

// Migrate applies the embedded scripts that have not run on db yet
func Migrate(db *sql.DB) error {
	migrator := sqlmigrator.New(db, darwin.SqliteDialect{})

	return migrator.Migrate(SqlFiles, "sql")
}
