package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/MrJamesThe3rd/vipledger/internal/database"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

const slotsTable = "slots"

// SQL keeps the document in one row of the slots table.
type SQL struct {
	db      *sql.DB
	key     string
	builder sq.StatementBuilderType
}

// NewSQLite opens (creating if needed) a SQLite database file and migrates it.
func NewSQLite(path, key string) (*SQL, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateSQLite(path); err != nil {
		db.Close()
		return nil, err
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	return &SQL{db: db, key: key, builder: sq.StatementBuilder.PlaceholderFormat(sq.Question)}, nil
}

// NewPostgres connects to Postgres and migrates the slots table.
func NewPostgres(connStr, key string) (*SQL, error) {
	db, err := database.New(connStr)
	if err != nil {
		return nil, err
	}

	if err := migratePostgres(connStr); err != nil {
		db.Close()
		return nil, err
	}

	return &SQL{db: db, key: key, builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}, nil
}

func (s *SQL) Read(ctx context.Context) ([]byte, error) {
	query, args, err := s.builder.
		Select("payload").
		From(slotsTable).
		Where(sq.Eq{"key": s.key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build read query: %w", err)
	}

	var payload string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrSlotEmpty
		}

		return nil, fmt.Errorf("read slot: %w", err)
	}

	return []byte(payload), nil
}

func (s *SQL) Write(ctx context.Context, payload []byte) error {
	query, args, err := s.builder.
		Insert(slotsTable).
		Columns("key", "payload", "updated_at").
		Values(s.key, string(payload), time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build write query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}

	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
