package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/starford/timewarp/internal/apperr"
	"github.com/starford/timewarp/internal/timeutil"
)

// The row-store timestamps count seconds since the Core Data epoch.
var appleEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// AssetRecord is one photo/video row. Local is the naive local-clock
// reading derived from the stored absolute instant and offset; the
// row-store itself never holds the local reading directly.
type AssetRecord struct {
	UUID         string
	Filename     string
	Local        time.Time
	TZOffset     int
	TZName       string
	OriginalPath string // empty when the original is not on disk
}

// GetAsset reads the current date/time/timezone facts for one asset.
func (db *DB) GetAsset(uuid string) (AssetRecord, error) {
	const q = `
		SELECT ZASSET.ZDATECREATED, ZASSET.ZDIRECTORY, ZASSET.ZFILENAME,
		       ZADDITIONALASSETATTRIBUTES.ZTIMEZONEOFFSET,
		       ZADDITIONALASSETATTRIBUTES.ZTIMEZONENAME
		FROM ZASSET
		JOIN ZADDITIONALASSETATTRIBUTES
		  ON ZADDITIONALASSETATTRIBUTES.ZASSET = ZASSET.Z_PK
		WHERE ZASSET.ZUUID = ?`

	var (
		created   sql.NullFloat64
		directory sql.NullString
		filename  sql.NullString
		tzOffset  sql.NullInt64
		tzName    sql.NullString
	)
	err := retryBusy(db.retry, func() error {
		return db.conn.QueryRow(q, uuid).Scan(&created, &directory, &filename, &tzOffset, &tzName)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return AssetRecord{}, fmt.Errorf("store: asset %s: %w", uuid, apperr.ErrNotFound)
	}
	if err != nil {
		return AssetRecord{}, fmt.Errorf("store: read asset %s: %w", uuid, err)
	}

	instant := appleEpoch.Add(time.Duration(created.Float64 * float64(time.Second)))
	rec := AssetRecord{
		UUID:     uuid,
		Filename: filename.String,
		TZOffset: int(tzOffset.Int64),
		TZName:   tzName.String,
		Local:    timeutil.LocalFromInstant(instant, int(tzOffset.Int64)),
	}
	if directory.Valid && filename.Valid {
		p := filepath.Join(db.originals, directory.String, filename.String)
		if _, err := os.Stat(p); err == nil {
			rec.OriginalPath = p
		}
	}
	return rec, nil
}

// UpdateTimezone writes a new offset and zone name for one asset and bumps
// the host-owned Z_OPT marker in the same transaction so the Photos cache
// invalidates on next read. The asset's local date-time field is not
// touched here; it only moves through the automation channel.
func (db *DB) UpdateTimezone(uuid string, offsetSeconds int, tzName string) error {
	const q = `
		UPDATE ZADDITIONALASSETATTRIBUTES
		SET ZTIMEZONEOFFSET = ?, ZTIMEZONENAME = ?, Z_OPT = Z_OPT + 1
		WHERE ZASSET = (SELECT Z_PK FROM ZASSET WHERE ZUUID = ?)`

	return retryBusy(db.retry, func() error {
		tx, err := db.conn.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck // best-effort on failure path

		res, err := tx.Exec(q, offsetSeconds, tzName, uuid)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("store: asset %s: %w", uuid, apperr.ErrNotFound)
		}
		return tx.Commit()
	})
}
