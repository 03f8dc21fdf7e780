// Package export writes snapshots of the merged journal view to SQLite
// files for use in external tools. The JSON stores stay the source of
// truth; an export is never read back by the journal itself.
package export

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// exportFileMode matches the permissions of a file created with os.Create
// under the usual umask.
const exportFileMode = 0o644

//go:embed schema.sql
var schemaSQL string

// WriteSQLite writes records, in the given order, to a new SQLite database
// at path. The database is built in a temp file next to path and renamed
// into place, so an existing export is replaced only by a complete one.
func WriteSQLite(ctx context.Context, path string, records []types.TaggedRecord) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.db")
	if err != nil {
		return fmt.Errorf("creating temp database: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(exportFileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting export permissions: %w", err)
	}
	tmp.Close()

	if err := fill(ctx, tmpName, records); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp database: %w", err)
	}
	return nil
}

func fill(ctx context.Context, dbPath string, records []types.TaggedRecord) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO entries (position, id, category, time, fields) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, tr := range records {
		fields, err := json.Marshal(tr.Fields)
		if err != nil {
			return fmt.Errorf("encoding entry %d: %w", i, err)
		}
		var id any
		if v, ok := tr.Fields[types.FieldID]; ok {
			id = v
		}
		if _, err := stmt.ExecContext(ctx, i, id, string(tr.Category), tr.Time, string(fields)); err != nil {
			return fmt.Errorf("inserting entry %d: %w", i, err)
		}
	}

	info := map[string]string{
		"exported_at": types.FormatTime(time.Now()),
		"entries":     fmt.Sprint(len(records)),
	}
	for k, v := range info {
		if _, err := tx.ExecContext(ctx, "INSERT INTO export_info (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("writing export info: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

// ReadSQLite loads the entries of an export in their stored order.
func ReadSQLite(ctx context.Context, path string) ([]types.TaggedRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT category, time, fields FROM entries ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	out := []types.TaggedRecord{}
	for rows.Next() {
		var category, ts, fields string
		if err := rows.Scan(&category, &ts, &fields); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		var rec types.Record
		if err := json.Unmarshal([]byte(fields), &rec); err != nil {
			return nil, fmt.Errorf("decoding entry fields: %w", err)
		}
		out = append(out, types.TaggedRecord{Category: types.Category(category), Time: ts, Fields: rec})
	}
	return out, rows.Err()
}
