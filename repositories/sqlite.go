package repositories

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/errors"
	"chat-feed/repositories/migrations"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var _ contract.ILogBackend = (*SQLiteLog)(nil)

// SQLiteLog stores the feed in a SQLite table whose AUTOINCREMENT primary key is the
// sequence id. SQLite never reuses an AUTOINCREMENT value, and a rolled back insert
// leaves no row behind. Other processes may write to the same file, subscribers pick
// their records up through polling.
type SQLiteLog struct {
	sqlDB *sql.DB
	log   *slog.Logger
}

// OpenSQLiteLog opens a SQLite log file and applies the embedded schema.
func OpenSQLiteLog(path string, log *slog.Logger) (*SQLiteLog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteLog{sqlDB: sqlDB, log: log}, nil
}

func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	for _, file := range files {
		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := sqlDB.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	return nil
}

func (s *SQLiteLog) Append(ctx context.Context, cmd domain.PostMessageCommand, at time.Time) (domain.MessageRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MessageRecord{}, err
	}
	createdAt := at.UTC()
	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO messages (sender_id, sender_display_name, text, created_at) VALUES (?, ?, ?, ?)`,
		cmd.SenderID, cmd.SenderDisplayName, cmd.Text, createdAt.UnixNano(),
	)
	if err != nil {
		return domain.MessageRecord{}, errors.Unavailable("append", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.MessageRecord{}, errors.Unavailable("append", err)
	}
	return domain.MessageRecord{
		SequenceID:        uint64(id),
		SenderID:          cmd.SenderID,
		SenderDisplayName: cmd.SenderDisplayName,
		Text:              cmd.Text,
		CreatedAt:         createdAt,
	}, nil
}

func (s *SQLiteLog) ReadLast(ctx context.Context, n int) ([]domain.MessageRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT sequence_id, sender_id, sender_display_name, text, created_at FROM (
		   SELECT sequence_id, sender_id, sender_display_name, text, created_at
		   FROM messages ORDER BY sequence_id DESC LIMIT ?
		 ) ORDER BY sequence_id ASC`, n)
	if err != nil {
		return nil, errors.Unavailable("read last", err)
	}
	return scanRecords(rows, "read last")
}

func (s *SQLiteLog) ReadAfter(ctx context.Context, after uint64, limit int) ([]domain.MessageRecord, error) {
	if after >= math.MaxInt64 {
		return nil, nil
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT sequence_id, sender_id, sender_display_name, text, created_at
		 FROM messages WHERE sequence_id > ? ORDER BY sequence_id ASC LIMIT ?`,
		int64(after), limit)
	if err != nil {
		return nil, errors.Unavailable("read after", err)
	}
	return scanRecords(rows, "read after")
}

func (s *SQLiteLog) LastSequence(ctx context.Context) (uint64, error) {
	var last sql.NullInt64
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT MAX(sequence_id) FROM messages`).Scan(&last); err != nil {
		return 0, errors.Unavailable("last sequence", err)
	}
	if !last.Valid {
		return 0, nil
	}
	return uint64(last.Int64), nil
}

func (s *SQLiteLog) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	s.log.Info("Closing SQLite...")
	return s.sqlDB.Close()
}

func scanRecords(rows *sql.Rows, op string) ([]domain.MessageRecord, error) {
	defer rows.Close()
	var records []domain.MessageRecord
	for rows.Next() {
		var (
			id        int64
			createdAt int64
			record    domain.MessageRecord
		)
		if err := rows.Scan(&id, &record.SenderID, &record.SenderDisplayName, &record.Text, &createdAt); err != nil {
			return nil, errors.Unavailable(op, err)
		}
		record.SequenceID = uint64(id)
		record.CreatedAt = time.Unix(0, createdAt).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Unavailable(op, err)
	}
	return records, nil
}
