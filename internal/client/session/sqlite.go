package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdir/internal/client/migrations"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/dbx"
	"github.com/dmitrijs2005/userdir/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Open opens (creating if needed) the SQLite file at dsn and applies the
// embedded migrations.
func Open(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if filex.IsFileDSN(dsn) {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("open session db: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	return NewSQLiteStore(db), nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context) (models.Session, bool, error) {
	raw, err := getValue(ctx, s.db, sessionKey)
	if err != nil {
		return models.Session{}, false, err
	}
	if raw == nil {
		return models.Session{}, false, nil
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return models.Session{}, false, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if !sess.Valid() {
		return models.Session{}, false, fmt.Errorf("%w: empty token", ErrCorruptSession)
	}
	return sess, true, nil
}

// Set replaces the stored session and remembers its email for the next
// login prompt.
func (s *SQLiteStore) Set(ctx context.Context, sess models.Session) error {
	if !sess.Valid() {
		return ErrEmptySession
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := setValue(ctx, tx, sessionKey, raw); err != nil {
			return err
		}
		if sess.User.Email == "" {
			return nil
		}
		return setValue(ctx, tx, lastEmailKey, []byte(sess.User.Email))
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, sessionKey)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", sessionKey, err)
	}
	return nil
}

// LastEmail returns the email of the most recently stored session, or "".
// It survives Clear.
func (s *SQLiteStore) LastEmail(ctx context.Context) (string, error) {
	raw, err := getValue(ctx, s.db, lastEmailKey)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func getValue(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func setValue(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}
