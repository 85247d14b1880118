package journal

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roasbeef/codex-peon/internal/category"
)

const (
	// DBFilename is the journal database file name inside the peon
	// home directory.
	DBFilename = "journal.db"

	// maxEntries bounds the journal; older rows are pruned on insert
	// so the database stays small regardless of run length.
	maxEntries = 512
)

// sqlSchemas embeds the SQL migration files at compile time for
// portability.
//
//go:embed migrations/*.sql
var sqlSchemas embed.FS

// Store is the SQLite-backed journal.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database under the given
// peon home directory and applies any pending migrations.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, DBFilename)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create journal "+
			"directory: %w", err)
	}

	// WAL mode plus a busy timeout keeps concurrent short-lived hook
	// processes from tripping over each other.
	dsn := fmt.Sprintf(
		"file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath,
	)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal db: %w", err)
	}

	// Single writer, single connection; the journal sees one short
	// burst of queries per invocation.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// applyMigrations brings the journal schema up to date using the
// embedded migration files.
func applyMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w",
			err)
	}

	src, err := httpfs.New(http.FS(sqlSchemas), "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	mig, err := migrate.NewWithInstance("migrations", src, "journal",
		driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// Append inserts one entry and prunes rows beyond the journal cap. An
// empty ID is assigned a fresh UUID.
func (s *Store) Append(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	_, err := s.db.Exec(`
		INSERT INTO entries (
			id, ts, thread, classified, chosen, resolved,
			outcome, sound_file, pid
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp, e.Thread, string(e.Classified),
		string(e.Chosen), string(e.Resolved), string(e.Outcome),
		e.SoundFile, e.PID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	// Keep only the most recent rows.
	_, err = s.db.Exec(`
		DELETE FROM entries WHERE id NOT IN (
			SELECT id FROM entries ORDER BY ts DESC LIMIT ?
		)`, maxEntries,
	)
	if err != nil {
		return fmt.Errorf("failed to prune journal: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, ts, thread, classified, chosen, resolved,
			outcome, sound_file, pid
		FROM entries ORDER BY ts DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                            Entry
			classified, chosen, resolved string
			outcome                      string
		)

		err := rows.Scan(
			&e.ID, &e.Timestamp, &e.Thread, &classified,
			&chosen, &resolved, &outcome, &e.SoundFile, &e.PID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal "+
				"entry: %w", err)
		}

		e.Classified = category.Category(classified)
		e.Chosen = category.Category(chosen)
		e.Resolved = category.Category(resolved)
		e.Outcome = Outcome(outcome)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// OutcomeCounts returns how many journal rows carry each outcome since
// the given unix time. Pass zero to count everything retained.
func (s *Store) OutcomeCounts(since float64) (map[Outcome]int, error) {
	rows, err := s.db.Query(`
		SELECT outcome, COUNT(*) FROM entries
		WHERE ts >= ? GROUP BY outcome`, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count outcomes: %w", err)
	}
	defer rows.Close()

	counts := make(map[Outcome]int)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("failed to scan outcome "+
				"count: %w", err)
		}
		counts[Outcome(outcome)] = n
	}

	return counts, rows.Err()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// describeOutcome renders an outcome for human-readable listings.
func describeOutcome(o Outcome) string {
	return strings.ReplaceAll(string(o), "_", " ")
}

// Describe renders the entry's outcome for display.
func (e Entry) Describe() string {
	return describeOutcome(e.Outcome)
}
