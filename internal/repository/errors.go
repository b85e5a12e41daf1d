// Package repository implements the engine's store interfaces on
// MySQL.  The repositories are thin structs over *sql.DB issuing raw
// SQL, following the conventions of the rest of the service: UTC
// timestamps everywhere, sql.Null* scanning for nullable columns, and
// engine-kinded errors so higher layers never see driver details.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the MySQL error number for a unique-key
// violation.
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a unique-key violation.
// The booking table carries a unique key over the live
// (speaker_id, event_id) pair, so this is how a storage-level race
// between two concurrent booking attempts surfaces.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// isNoRows reports whether err means the query matched nothing.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
