// Package persistence provides the SQL-backed event journal.
// Only engine events are stored; economy state is never persisted.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/macro-sim/internal/engine"
)

// Supported dialects. DialectNone disables the journal.
const (
	DialectNone     = "none"
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Options selects and locates the journal database.
type Options struct {
	Dialect     string
	SQLitePath  string
	PostgresDSN string
}

// DB wraps a journal connection.
type DB struct {
	conn    *sqlx.DB
	dialect string
}

// Open opens or creates the journal described by opts and applies the schema.
func Open(opts Options) (*DB, error) {
	var driver, dsn string
	switch opts.Dialect {
	case DialectSQLite:
		if opts.SQLitePath == "" {
			return nil, errors.New("sqlite journal requires a path")
		}
		if err := os.MkdirAll(filepath.Dir(opts.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		driver = "sqlite"
		dsn = opts.SQLitePath + "?_journal_mode=WAL&_busy_timeout=5000"
	case DialectPostgres:
		if opts.PostgresDSN == "" {
			return nil, errors.New("postgres journal requires a DSN")
		}
		driver = "pgx"
		dsn = opts.PostgresDSN
	default:
		return nil, fmt.Errorf("unsupported journal dialect %q", opts.Dialect)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s journal: %w", opts.Dialect, err)
	}
	if opts.Dialect == DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s journal: %w", opts.Dialect, err)
	}

	db := &DB{conn: conn, dialect: opts.Dialect}
	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("journal opened", "dialect", opts.Dialect)
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate(ctx context.Context) error {
	id := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.dialect == DialectPostgres {
		id = "id BIGSERIAL PRIMARY KEY"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			` + id + `,
			game_id TEXT NOT NULL,
			turn INTEGER NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			meta_json TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_game ON events(game_id, turn)`,
	}
	for _, s := range stmts {
		if _, err := db.conn.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// SaveEvents appends events to the journal in one transaction.
func (db *DB) SaveEvents(ctx context.Context, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := tx.Rebind(`INSERT INTO events
		(game_id, turn, category, description, meta_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	now := time.Now().UTC()
	for _, e := range events {
		meta := []byte("{}")
		if len(e.Meta) > 0 {
			if meta, err = json.Marshal(e.Meta); err != nil {
				return fmt.Errorf("encode meta for turn %d: %w", e.Turn, err)
			}
		}
		if _, err := tx.ExecContext(ctx, insert,
			e.GameID, e.Turn, e.Category, e.Description, string(meta), now,
		); err != nil {
			return fmt.Errorf("insert event for turn %d: %w", e.Turn, err)
		}
	}

	return tx.Commit()
}

type eventRow struct {
	GameID      string `db:"game_id"`
	Turn        int    `db:"turn"`
	Category    string `db:"category"`
	Description string `db:"description"`
	MetaJSON    string `db:"meta_json"`
}

// RecentEvents returns up to limit of the newest events, oldest first. An
// empty gameID matches every game.
func (db *DB) RecentEvents(ctx context.Context, gameID string, limit int) ([]engine.Event, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT game_id, turn, category, description, meta_json FROM events`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	var rows []eventRow
	if err := db.conn.SelectContext(ctx, &rows, db.conn.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	events := make([]engine.Event, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		e := engine.Event{
			GameID:      r.GameID,
			Turn:        r.Turn,
			Category:    r.Category,
			Description: r.Description,
		}
		if r.MetaJSON != "" && r.MetaJSON != "{}" {
			if err := json.Unmarshal([]byte(r.MetaJSON), &e.Meta); err != nil {
				return nil, fmt.Errorf("decode meta: %w", err)
			}
		}
		events = append(events, e)
	}
	return events, nil
}
