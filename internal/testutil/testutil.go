// Package testutil builds throwaway Photos library fixtures for tests.
package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var appleEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// Asset seeds one row pair in a fixture library.
type Asset struct {
	UUID      string
	Taken     time.Time // absolute instant
	TZOffset  int
	TZName    string
	Directory string
	Filename  string
	OnDisk    bool // create an empty original file under originals/
}

const fixtureSchema = `
CREATE TABLE ZASSET (
	Z_PK         INTEGER PRIMARY KEY,
	ZUUID        TEXT UNIQUE NOT NULL,
	ZDATECREATED REAL,
	ZDIRECTORY   TEXT,
	ZFILENAME    TEXT
);

CREATE TABLE ZADDITIONALASSETATTRIBUTES (
	Z_PK            INTEGER PRIMARY KEY,
	Z_OPT           INTEGER NOT NULL DEFAULT 1,
	ZASSET          INTEGER NOT NULL,
	ZTIMEZONEOFFSET INTEGER,
	ZTIMEZONENAME   TEXT
);
`

// TestLibrary creates a temporary .photoslibrary-shaped directory with a
// Photos.sqlite holding the given assets, and returns the bundle path.
func TestLibrary(t *testing.T, assets ...Asset) string {
	t.Helper()
	lib := t.TempDir()
	if err := os.MkdirAll(filepath.Join(lib, "database"), 0o755); err != nil {
		t.Fatal(err)
	}

	conn, err := sql.Open("sqlite3", filepath.Join(lib, "database", "Photos.sqlite"))
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Exec(fixtureSchema); err != nil {
		t.Fatalf("apply fixture schema: %v", err)
	}

	for i, a := range assets {
		created := a.Taken.Sub(appleEpoch).Seconds()
		if _, err := conn.Exec(
			`INSERT INTO ZASSET (Z_PK, ZUUID, ZDATECREATED, ZDIRECTORY, ZFILENAME) VALUES (?, ?, ?, ?, ?)`,
			i+1, a.UUID, created, a.Directory, a.Filename,
		); err != nil {
			t.Fatalf("insert asset %s: %v", a.UUID, err)
		}
		if _, err := conn.Exec(
			`INSERT INTO ZADDITIONALASSETATTRIBUTES (Z_PK, Z_OPT, ZASSET, ZTIMEZONEOFFSET, ZTIMEZONENAME) VALUES (?, 1, ?, ?, ?)`,
			i+1, i+1, a.TZOffset, a.TZName,
		); err != nil {
			t.Fatalf("insert attributes for %s: %v", a.UUID, err)
		}
		if a.OnDisk {
			dir := filepath.Join(lib, "originals", a.Directory)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(dir, a.Filename), []byte("stub"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
	return lib
}
