// Package store provides read/write access to the Photos library row-store
// (Photos.sqlite) while the Photos app holds it open.
//
// High-level SQLite clients commonly refuse to open a database file that
// another process has locked, as a matter of policy rather than engine
// capability. This driver binds the native engine directly (mattn/go-sqlite3
// over cgo), opens read-write without creating, and honors the engine's real
// concurrency contract instead: explicit transactions plus bounded busy
// retry, because Photos periodically takes brief write locks even while
// idle.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/timewarp/internal/apperr"
)

// Relative location of the row-store inside a .photoslibrary bundle.
const databaseRelPath = "database/Photos.sqlite"

// requiredSchema is the one row-store layout this tool understands
// (Photos 5 and later). Anything else is IncompatibleSchema at open time.
var requiredSchema = map[string][]string{
	"ZASSET":                     {"Z_PK", "ZUUID", "ZDATECREATED", "ZDIRECTORY", "ZFILENAME"},
	"ZADDITIONALASSETATTRIBUTES": {"Z_PK", "Z_OPT", "ZASSET", "ZTIMEZONEOFFSET", "ZTIMEZONENAME"},
}

// RetryPolicy bounds the busy retry loop for statements that hit a
// concurrent writer's lock.
type RetryPolicy struct {
	Attempts int
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultRetryPolicy spans a few seconds of exponential backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 10, MinDelay: 100 * time.Millisecond, MaxDelay: 5 * time.Second}
}

// DB is a handle to one Photos library row-store.
type DB struct {
	conn      *sql.DB
	originals string
	retry     RetryPolicy
	closed    bool
}

// Open binds to the row-store inside the given .photoslibrary bundle.
// The file is opened read-write and is never created; a missing or invalid
// path yields apperr.ErrNotFound, an unexpected table/column layout yields
// apperr.ErrIncompatibleSchema.
func Open(libraryPath string, retry RetryPolicy) (*DB, error) {
	dbPath := filepath.Join(libraryPath, databaseRelPath)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("store: %s: %w", dbPath, apperr.ErrNotFound)
	}

	// mode=rw opens around any advisory lock the host holds; the short
	// busy_timeout handles sub-statement contention, the retry policy
	// handles the rest.
	dsn := fmt.Sprintf("file:%s?mode=rw&_busy_timeout=500", dbPath)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dbPath, err)
	}
	// A single connection keeps transaction state unambiguous.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: open %s: %v: %w", dbPath, err, apperr.ErrNotFound)
	}

	db := &DB{conn: conn, originals: filepath.Join(libraryPath, "originals"), retry: retry}
	if err := db.checkSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// checkSchema verifies every required table and column exists, so a layout
// mismatch fails loudly at open time instead of as a silent partial read.
func (db *DB) checkSchema() error {
	for table, columns := range requiredSchema {
		rows, err := db.conn.Query(fmt.Sprintf(`PRAGMA table_info(%s)`, table))
		if err != nil {
			return fmt.Errorf("store: inspect table %s: %w", table, err)
		}
		present := make(map[string]bool)
		for rows.Next() {
			var (
				cid, notNull, pk int
				name, colType    string
				dflt             sql.NullString
			)
			if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
				rows.Close()
				return fmt.Errorf("store: inspect table %s: %w", table, err)
			}
			present[strings.ToUpper(name)] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("store: inspect table %s: %w", table, err)
		}
		for _, col := range columns {
			if !present[col] {
				return fmt.Errorf("store: table %s missing column %s: %w", table, col, apperr.ErrIncompatibleSchema)
			}
		}
	}
	return nil
}

// Close releases the native handle. Safe to call more than once.
func (db *DB) Close() error {
	if db.closed {
		return nil
	}
	db.closed = true
	return db.conn.Close()
}
