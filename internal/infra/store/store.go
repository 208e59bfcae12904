// Package store persists one JSON record per user in SQLite.
// Uses WAL mode for concurrent reads and crash-safe writes. Records
// are read and written whole — no partial updates.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/habitloop/habitd/internal/domain"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/habits.db.
// Enables WAL mode, foreign keys, and a 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "habits.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			record     TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_updated ON users(updated_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── User Records ───────────────────────────────────────────────────────────

// Get loads one user's whole record.
func (d *DB) Get(userID string) (domain.UserRecord, error) {
	var raw string
	err := d.db.QueryRow(`SELECT record FROM users WHERE id = ?`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return domain.UserRecord{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.UserRecord{}, fmt.Errorf("%w: get %s: %v", domain.ErrPersistence, userID, err)
	}

	var rec domain.UserRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.UserRecord{}, fmt.Errorf("%w: decode record %s: %v", domain.ErrPersistence, userID, err)
	}
	return rec, nil
}

// Put overwrites the user's whole record, creating the user if needed.
func (d *DB) Put(userID string, rec domain.UserRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode record %s: %v", domain.ErrPersistence, userID, err)
	}

	_, err = d.db.Exec(
		`INSERT INTO users (id, record, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET record=excluded.record, updated_at=excluded.updated_at`,
		userID, string(raw), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", domain.ErrPersistence, userID, err)
	}
	return nil
}

// ListUserIDs returns all known user ids in stable order.
func (d *DB) ListUserIDs() ([]string, error) {
	rows, err := d.db.Query(`SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", domain.ErrPersistence, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan user id: %v", domain.ErrPersistence, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes a user and their record as a whole unit.
func (d *DB) Delete(userID string) error {
	result, err := d.db.Exec(`DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrPersistence, userID, err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
