package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gmwallet/gm/internal/config/migrations"
	"github.com/gmwallet/gm/internal/logger"

	_ "modernc.org/sqlite"
)

const (
	// Dir is the directory under the home directory holding gm state.
	Dir = ".gm"
	// FileName is the settings database file name.
	FileName = "config.db"
	// EnvPath overrides the database location.
	EnvPath = "GM_CONFIG"

	filePermissions = 0o600
)

const (
	createMetadataTable = `
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`

	createSettingsTable = `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("settings store is closed")

// Transfer is one entry of the transfer log.
type Transfer struct {
	At      time.Time
	To      string
	Amount  string
	Unit    string
	Testnet bool
}

// Store persists Config in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns $GM_CONFIG, or ~/.gm/config.db.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, Dir, FileName), nil
}

// Open opens or creates the database at path and brings its schema up to
// date.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := os.Chmod(path, filePermissions); err != nil {
		logger.Log.Debugf("Failed to restrict permissions of %s: %v", path, err)
	}

	logger.Log.Debugf("Settings database opened at %s", path)

	return &Store{db: db, path: path}, nil
}

// Path is the database location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil

	return err
}

func initSchema(db *sql.DB) error {
	for _, stmt := range []string{createMetadataTable, createSettingsTable} {
		logSQL(stmt)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	current, err := schemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations.Pending(current) {
		logger.Log.Debugf("Applying migration v%d: %s", m.Version, m.Description)
		if err := m.Apply(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		if err := setSchemaVersion(db, m.Version); err != nil {
			return err
		}
	}

	if current == 0 {
		return setSchemaVersion(db, migrations.Latest())
	}

	return nil
}

// schemaVersion returns 0 for a new database.
func schemaVersion(db *sql.DB) (int, error) {
	var version int

	query := "SELECT value FROM metadata WHERE key = 'schema_version'"
	logSQL(query)

	err := db.QueryRow(query).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}

	return version, nil
}

func setSchemaVersion(db *sql.DB, version int) error {
	query := "INSERT OR REPLACE INTO metadata (key, value) VALUES ('schema_version', ?)"
	logSQL(query, version)

	if _, err := db.Exec(query, version); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	return nil
}

// SchemaVersion reports the schema version stored in the database.
func (s *Store) SchemaVersion() (int, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}

	return schemaVersion(s.db)
}

// Load reads the configuration. Missing settings keep their defaults.
func (s *Store) Load(ctx context.Context) (Config, error) {
	cfg := Default()
	if s == nil || s.db == nil {
		return cfg, ErrClosed
	}

	query := "SELECT key, value FROM settings"
	logSQL(query)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return cfg, fmt.Errorf("failed to read settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return cfg, fmt.Errorf("failed to scan setting: %w", err)
		}

		if err := cfg.Set(key, value); err != nil {
			// Unknown or invalid rows are skipped.
			logger.Log.Warnf("Ignoring setting %s=%q: %v", key, value, err)
		}
	}
	if err := rows.Err(); err != nil {
		return cfg, fmt.Errorf("failed to read settings: %w", err)
	}

	return cfg, nil
}

// Save validates cfg and writes every setting in one transaction.
func (s *Store) Save(ctx context.Context, cfg Config) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)"
	for _, key := range Keys() {
		value, _ := cfg.Get(key)
		logSQL(query, key)
		if _, err := tx.ExecContext(ctx, query, key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}

	logger.Log.Debug("Settings saved")

	return nil
}

// Set updates a single setting by name.
func (s *Store) Set(ctx context.Context, key, value string) (Config, error) {
	cfg, err := s.Load(ctx)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Set(key, value); err != nil {
		return cfg, err
	}

	return cfg, s.Save(ctx, cfg)
}

// RecordTransfer appends t to the transfer log.
func (s *Store) RecordTransfer(ctx context.Context, t Transfer) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}

	query := `INSERT INTO transfer_log (requested_at, recipient, amount, unit, testnet) VALUES (?, ?, ?, ?, ?)`
	logSQL(query, t.To, t.Amount, t.Unit)

	testnet := 0
	if t.Testnet {
		testnet = 1
	}

	if _, err := s.db.ExecContext(ctx, query, t.At.Unix(), t.To, t.Amount, t.Unit, testnet); err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}

	return nil
}

// Transfers returns up to limit log entries, newest first.
func (s *Store) Transfers(ctx context.Context, limit int) ([]Transfer, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}

	query := `SELECT requested_at, recipient, amount, unit, testnet FROM transfer_log ORDER BY requested_at DESC, id DESC LIMIT ?`
	logSQL(query, limit)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read transfer log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Transfer
	for rows.Next() {
		var (
			t           Transfer
			at, testnet int64
		)
		if err := rows.Scan(&at, &t.To, &t.Amount, &t.Unit, &testnet); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		t.At, t.Testnet = time.Unix(at, 0), testnet != 0
		out = append(out, t)
	}

	return out, rows.Err()
}

func logSQL(query string, args ...any) {
	logger.Log.Tracef("SQL: %s %v", strings.Join(strings.Fields(query), " "), args)
}
