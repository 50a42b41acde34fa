package score

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps entries in a scores table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the database, checks the connection and creates
// the schema when it is missing.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		class TEXT NOT NULL,
		seconds INTEGER NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL
	);

	CREATE INDEX IF NOT EXISTS scores_seconds_idx ON scores (seconds, created_at);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Submit stores the entry
func (s *PostgresStore) Submit(ctx context.Context, entry Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	query := `
	INSERT INTO scores (id, username, class, seconds, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, entry.ID, entry.Username, entry.Class, entry.Seconds, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to submit entry: %w", err)
	}
	return nil
}

// Top returns up to n entries, fastest first
func (s *PostgresStore) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	query := `
	SELECT id, username, class, seconds, created_at FROM scores
	ORDER BY seconds ASC, created_at ASC
	LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Username, &e.Class, &e.Seconds, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}
	return entries, nil
}

// Close closes the database
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
