package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver registered by this package.
const DriverName = "sqlite3_motivate"

// BusyTimeoutMillis bounds how long a writer waits on a locked database.
const BusyTimeoutMillis = 5000

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			_, err := conn.Exec(`
				PRAGMA busy_timeout = 5000;
				PRAGMA foreign_keys = ON;
				PRAGMA synchronous = NORMAL;
			`, nil)
			return err
		},
	})
}
