package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type migration struct {
	version int
	up      string
	down    string
}

// MigrateUp applies every migration newer than the database's user_version.
func MigrateUp(db *sql.DB) error {
	ms, err := loadMigrations()
	if err != nil {
		return err
	}
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	for _, m := range ms {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m.up, m.version); err != nil {
			return fmt.Errorf("apply migration %04d up: %w", m.version, err)
		}
	}
	return nil
}

// MigrateDown reverts applied migrations newest first, ending at version 0.
func MigrateDown(db *sql.DB) error {
	ms, err := loadMigrations()
	if err != nil {
		return err
	}
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	for i := len(ms) - 1; i >= 0; i-- {
		m := ms[i]
		if m.version > current {
			continue
		}
		if err := applyMigration(db, m.down, m.version-1); err != nil {
			return fmt.Errorf("apply migration %04d down: %w", m.version, err)
		}
	}
	return nil
}

func SchemaVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

func applyMigration(db *sql.DB, stmt string, version int) error {
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(stmt); err != nil {
		return err
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.Exec("PRAGMA user_version = " + strconv.Itoa(version)); err != nil {
		return err
	}
	return tx.Commit()
}

// loadMigrations pairs NNNN_name.up.sql with NNNN_name.down.sql, ordered by
// the numeric prefix.
func loadMigrations() ([]migration, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	out := make([]migration, 0, len(entries))
	for _, name := range entries {
		base := path.Base(name)
		prefix, _, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: missing version prefix", base)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s: bad version %q", base, prefix)
		}
		up, err := migrationFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		downName := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
		down, err := migrationFiles.ReadFile(downName)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", downName, err)
		}
		out = append(out, migration{version: version, up: string(up), down: string(down)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}
