package contextref

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteResolverConfig contains configuration for the SQLite-backed context
// store.
type SQLiteResolverConfig struct {
	// Path is the database file path.
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// DefaultSQLiteResolverConfig returns the default SQLite store configuration.
func DefaultSQLiteResolverConfig() *SQLiteResolverConfig {
	return &SQLiteResolverConfig{
		Path:         "data/context.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteResolver is a Resolver backed by a local SQLite database. It doubles
// as a writable store: Put and Delete let the CLI and the git sync layer
// maintain the asset table that Resolve reads.
type SQLiteResolver struct {
	db     *sql.DB
	config *SQLiteResolverConfig
	logger *slog.Logger
}

// NewSQLiteResolver opens (creating if needed) the context asset database.
func NewSQLiteResolver(config *SQLiteResolverConfig) (*SQLiteResolver, error) {
	if config == nil {
		config = DefaultSQLiteResolverConfig()
	}

	logger := slog.Default().With("component", "context-store-sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open context database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteResolver{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("context store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize sets up the schema and pragmas.
func (s *SQLiteResolver) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS context_assets (
			collection TEXT NOT NULL,
			asset_id   TEXT NOT NULL,
			content    TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (collection, asset_id)
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Put stores or replaces the content for a path.
func (s *SQLiteResolver) Put(ctx context.Context, path, content string) error {
	collection, assetID, err := SplitPath(path)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO context_assets (collection, asset_id, content, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, asset_id) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at
	`, collection, assetID, content, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store context asset: %w", err)
	}
	return nil
}

// Delete removes the content stored under a path. Deleting an absent path is
// not an error.
func (s *SQLiteResolver) Delete(ctx context.Context, path string) error {
	collection, assetID, err := SplitPath(path)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"DELETE FROM context_assets WHERE collection = ? AND asset_id = ?",
		collection, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete context asset: %w", err)
	}
	return nil
}

// Resolve performs a single lookup.
func (s *SQLiteResolver) Resolve(ctx context.Context, path string) (Resolution, error) {
	collection, assetID, err := SplitPath(path)
	if err != nil {
		return Resolution{Path: path, Err: err}, nil
	}

	var content string
	err = s.db.QueryRowContext(ctx,
		"SELECT content FROM context_assets WHERE collection = ? AND asset_id = ?",
		collection, assetID).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return Resolution{Path: path, Err: &NotFoundError{Path: path}}, nil
	}
	if err != nil {
		return Resolution{Path: path, Err: &ResolveError{Path: path, Cause: err}}, nil
	}
	return Resolution{Path: path, Content: content}, nil
}

// ResolveBatch resolves many paths in a single query. Paths that fail
// validation are reported invalid without touching the database.
func (s *SQLiteResolver) ResolveBatch(ctx context.Context, paths []string) (BatchResult, error) {
	result := make(BatchResult, len(paths))

	type key struct{ collection, assetID string }
	keyToPath := make(map[key]string)
	var args []any
	var placeholders []string

	for _, path := range paths {
		collection, assetID, err := SplitPath(path)
		if err != nil {
			result[path] = Resolution{Path: path, Err: err}
			continue
		}
		keyToPath[key{collection, assetID}] = path
		placeholders = append(placeholders, "(? , ?)")
		args = append(args, collection, assetID)
	}
	if len(args) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT collection, asset_id, content FROM context_assets
		WHERE (collection, asset_id) IN (VALUES %s)
	`, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("batch context lookup failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var collection, assetID, content string
		if err := rows.Scan(&collection, &assetID, &content); err != nil {
			return nil, fmt.Errorf("failed to scan context asset: %w", err)
		}
		if path, ok := keyToPath[key{collection, assetID}]; ok {
			result[path] = Resolution{Path: path, Content: content}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("batch context lookup failed: %w", err)
	}

	for _, path := range keyToPath {
		if _, ok := result[path]; !ok {
			result[path] = Resolution{Path: path, Err: &NotFoundError{Path: path}}
		}
	}

	return result, nil
}

// Close closes the underlying database.
func (s *SQLiteResolver) Close() error {
	return s.db.Close()
}
