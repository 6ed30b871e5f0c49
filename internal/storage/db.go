// ABOUTME: SQL database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go) locally and lib/pq for a hosted Postgres.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// timestampFormat is fixed width so text ordering matches time ordering.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// DB wraps a SQLite or Postgres connection behind one Repository implementation.
type DB struct {
	db      *sql.DB
	dbPath  string
	dialect dialect
}

// Compile-time check that DB implements Repository.
var _ Repository = (*DB)(nil)

// Open opens or creates a SQLite database at the given path.
func Open(dbPath string) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// PRAGMAs are per connection.
	db.SetMaxOpenConns(1)

	d := &DB{db: db, dbPath: dbPath, dialect: dialectSQLite}

	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	if err := d.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return d, nil
}

// OpenPostgres connects to a Postgres database using a lib/pq DSN.
func OpenPostgres(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("open postgres: empty DSN")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	d := &DB{db: db, dialect: dialectPostgres}
	if err := d.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return d, nil
}

// DataDir returns the default data directory under XDG_DATA_HOME.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "agewell")
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for optimal performance.
func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for Postgres.
func (d *DB) rebind(query string) string {
	if d.dialect != dialectPostgres {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (d *DB) exec(query string, args ...any) (sql.Result, error) {
	return d.db.Exec(d.rebind(query), args...)
}

func (d *DB) query(query string, args ...any) (*sql.Rows, error) {
	return d.db.Query(d.rebind(query), args...)
}

func (d *DB) queryRow(query string, args ...any) *sql.Row {
	return d.db.QueryRow(d.rebind(query), args...)
}

// resolveID finds the full ID in table from an ID or prefix.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	if IsFullUUID(idOrPrefix) {
		var id string
		err := d.queryRow("SELECT id FROM "+table+" WHERE id = ?", idOrPrefix).Scan(&id)
		if err == sql.ErrNoRows {
			return "", notFound(idOrPrefix)
		}
		if err != nil {
			return "", fmt.Errorf("resolve %s ID: %w", table, err)
		}
		return id, nil
	}
	if !isIDPrefix(idOrPrefix) {
		return "", notFound(idOrPrefix)
	}

	rows, err := d.query("SELECT id FROM "+table+" WHERE id LIKE ?", idOrPrefix+"%")
	if err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", table, err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan %s ID: %w", table, err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", table, err)
	}

	return MatchPrefix(matches, idOrPrefix)
}

// isIDPrefix reports whether s can only contain UUID characters,
// so it is safe to use as a LIKE pattern.
func isIDPrefix(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F' || r == '-') {
			return false
		}
	}
	return true
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timestampFormat, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func parseDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatDate(*t)
}
