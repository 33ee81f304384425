// Package sqlite provides a SQLite-backed implementation of the storage
// interface, for deployments that want durable history without running Redis.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS punishments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	target_id TEXT NOT NULL,
	target_name TEXT NOT NULL,
	target_ip TEXT NOT NULL DEFAULT '',
	executor_id TEXT NOT NULL,
	executor_name TEXT NOT NULL,
	reason TEXT NOT NULL,
	created_at_ms INTEGER NOT NULL,
	duration_ms INTEGER,
	active INTEGER NOT NULL,
	silent INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_punishments_target ON punishments(target_id, id);
CREATE INDEX IF NOT EXISTS idx_punishments_active_target ON punishments(kind, target_id, active);
CREATE INDEX IF NOT EXISTS idx_punishments_active_ip ON punishments(kind, target_ip, active);

CREATE TABLE IF NOT EXISTS points (
	player_id TEXT PRIMARY KEY,
	balance INTEGER NOT NULL
);
`

const punishmentColumns = "id, kind, target_id, target_name, target_ip, executor_id, executor_name, reason, created_at_ms, duration_ms, active, silent"

// Storage persists punishment and point state in SQLite
type Storage struct {
	db *sql.DB
}

// Open opens a SQLite storage at the given path and initializes the schema
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the SQLite handle
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func (s *Storage) CreatePunishment(ctx context.Context, p *model.Punishment) (model.PunishmentID, error) {
	var durationMs sql.NullInt64
	if p.Duration != nil {
		durationMs = sql.NullInt64{Int64: p.Duration.Milliseconds(), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO punishments (kind, target_id, target_name, target_ip, executor_id, executor_name, reason, created_at_ms, duration_ms, active, silent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(p.Kind), string(p.TargetID), p.TargetName, p.TargetIP,
		string(p.ExecutorID), p.ExecutorName, p.Reason,
		toMillis(p.CreatedAt), durationMs, p.Active, p.Silent,
	)
	if err != nil {
		return 0, fmt.Errorf("insert punishment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read insert id: %w", err)
	}
	return model.PunishmentID(id), nil
}

func (s *Storage) UpdatePunishmentActive(ctx context.Context, id model.PunishmentID, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE punishments SET active = ? WHERE id = ?`, active, int64(id))
	if err != nil {
		return fmt.Errorf("update punishment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrPunishmentNotFound
	}
	return nil
}

func (s *Storage) FindActiveByPlayer(ctx context.Context, kind model.Kind, playerID model.PlayerID) (*model.Punishment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+punishmentColumns+` FROM punishments
		WHERE kind = ? AND target_id = ? AND active = 1
		ORDER BY id DESC LIMIT 1`,
		string(kind), string(playerID),
	)
	return scanOptional(row)
}

func (s *Storage) FindActiveByIP(ctx context.Context, kind model.Kind, ip string) (*model.Punishment, error) {
	if ip == "" {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+punishmentColumns+` FROM punishments
		WHERE kind = ? AND target_ip = ? AND active = 1
		ORDER BY id DESC LIMIT 1`,
		string(kind), ip,
	)
	return scanOptional(row)
}

func (s *Storage) FindByID(ctx context.Context, id model.PunishmentID) (*model.Punishment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+punishmentColumns+` FROM punishments WHERE id = ?`, int64(id))

	p, err := scanPunishment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPunishmentNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Storage) ListByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Punishment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+punishmentColumns+` FROM punishments
		WHERE target_id = ? ORDER BY id DESC`,
		string(playerID),
	)
	if err != nil {
		return nil, fmt.Errorf("list punishments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []*model.Punishment{}
	for rows.Next() {
		p, err := scanPunishment(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

func (s *Storage) CountByPlayer(ctx context.Context, playerID model.PlayerID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM punishments WHERE target_id = ?`, string(playerID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count punishments: %w", err)
	}
	return count, nil
}

func (s *Storage) GetPointBalance(ctx context.Context, playerID model.PlayerID) (int, error) {
	var balance int
	err := s.db.QueryRowContext(ctx,
		`SELECT balance FROM points WHERE player_id = ?`, string(playerID),
	).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get point balance: %w", err)
	}
	return balance, nil
}

func (s *Storage) SetPointBalance(ctx context.Context, playerID model.PlayerID, balance int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO points (player_id, balance) VALUES (?, ?)
		ON CONFLICT(player_id) DO UPDATE SET balance = excluded.balance`,
		string(playerID), balance,
	)
	if err != nil {
		return fmt.Errorf("set point balance: %w", err)
	}
	return nil
}

func (s *Storage) ComputeStats(ctx context.Context, now time.Time) (*model.Stats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*),
			SUM(CASE WHEN active = 1 AND (duration_ms IS NULL OR created_at_ms + duration_ms > ?) THEN 1 ELSE 0 END)
		FROM punishments GROUP BY kind`,
		toMillis(now),
	)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stats := &model.Stats{}
	for rows.Next() {
		var kind string
		var total, active int
		if err := rows.Scan(&kind, &total, &active); err != nil {
			return nil, err
		}
		switch model.Kind(kind) {
		case model.KindBan:
			stats.TotalBans, stats.ActiveBans = total, active
		case model.KindMute:
			stats.TotalMutes, stats.ActiveMutes = total, active
		case model.KindWarning:
			stats.TotalWarnings, stats.ActiveWarnings = total, active
		}
	}
	return stats, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanPunishment(row scanner) (*model.Punishment, error) {
	var (
		p           model.Punishment
		kind        string
		targetID    string
		executorID  string
		createdAtMs int64
		durationMs  sql.NullInt64
	)

	err := row.Scan(&p.ID, &kind, &targetID, &p.TargetName, &p.TargetIP,
		&executorID, &p.ExecutorName, &p.Reason, &createdAtMs, &durationMs,
		&p.Active, &p.Silent)
	if err != nil {
		return nil, err
	}

	p.Kind = model.Kind(kind)
	p.TargetID = model.PlayerID(targetID)
	p.ExecutorID = model.PlayerID(executorID)
	p.CreatedAt = fromMillis(createdAtMs)
	if durationMs.Valid {
		d := time.Duration(durationMs.Int64) * time.Millisecond
		p.Duration = &d
	}
	return &p, nil
}

// scanOptional maps sql.ErrNoRows to a nil record
func scanOptional(row *sql.Row) (*model.Punishment, error) {
	p, err := scanPunishment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}
