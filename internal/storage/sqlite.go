// Package storage implements the sqlite-backed collaborators the
// conversation engine depends on: the per-user candidate sets and the
// recorder that receives completed drafts.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/nadiprasetio/catat-cuan/internal/model"
)

// SQLiteStorage owns the application database.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage opens (creating if needed) the database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath is required")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// DB exposes the handle for collaborators that share the database, such
// as the sqlite session store.
func (s *SQLiteStorage) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Accounts returns the user's account names plus the global defaults,
// ordered by name.
func (s *SQLiteStorage) Accounts(ctx context.Context, userID string) ([]string, error) {
	return s.names(ctx, "accounts", userID)
}

// Categories returns the user's category names plus the global
// defaults, ordered by name.
func (s *SQLiteStorage) Categories(ctx context.Context, userID string) ([]string, error) {
	return s.names(ctx, "categories", userID)
}

func (s *SQLiteStorage) names(ctx context.Context, table, userID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT name FROM %s
		WHERE (user_id = ? OR user_id = '') AND is_active = 1
		ORDER BY name`, table)

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}
	return names, nil
}

// AddAccount registers an account name for a user. An empty userID adds
// a global default.
func (s *SQLiteStorage) AddAccount(ctx context.Context, userID, name string) error {
	return s.addName(ctx, "accounts", userID, name)
}

// AddCategory registers a category name for a user. An empty userID
// adds a global default.
func (s *SQLiteStorage) AddCategory(ctx context.Context, userID, name string) error {
	return s.addName(ctx, "categories", userID, name)
}

func (s *SQLiteStorage) addName(ctx context.Context, table, userID, name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, is_active) VALUES (?, ?, 1)
		ON CONFLICT(user_id, name) DO UPDATE SET is_active = 1`, table)
	if _, err := s.db.ExecContext(ctx, query, userID, name); err != nil {
		return fmt.Errorf("failed to add %s entry: %w", table, err)
	}
	return nil
}

// Record persists a completed transaction draft. This is the hand-off
// point: the engine calls it exactly once per completed session.
func (s *SQLiteStorage) Record(ctx context.Context, userID string, draft model.TransactionDraft) error {
	if !draft.IsComplete() {
		return fmt.Errorf("refusing to record incomplete draft")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (user_id, account, category, type, amount, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID,
		draft.Account,
		draft.Category,
		string(draft.Type),
		draft.Amount.String(),
		draft.Date.Format(model.DateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}
