package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Session is one mount of the counter component.
type Session struct {
	ID           string
	InitialCount int64
	Iterations   int64
	ComputeMS    int64
	MountedAt    time.Time
}

// ActionEntry is one dispatched action. CountAfter is nil when the reducer
// rejected the action, in which case Error holds the message.
type ActionEntry struct {
	ID         string
	SessionID  string
	Seq        int
	Tag        string
	Payload    *int64
	CountAfter *int64
	Error      *string
	CreatedAt  time.Time
}

// JournalRepo records mounts and dispatched actions.
type JournalRepo struct {
	db *sql.DB
}

func NewJournalRepo(db *sql.DB) *JournalRepo { return &JournalRepo{db: db} }

func (r *JournalRepo) CreateSession(ctx context.Context, s Session) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO sessions(id, initial_count, iterations, compute_ms, mounted_at)
	VALUES(?, ?, ?, ?, ?);
	`, s.ID, s.InitialCount, s.Iterations, s.ComputeMS, s.MountedAt)
	return err
}

func (r *JournalRepo) Append(ctx context.Context, e ActionEntry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO actions(id, session_id, seq, tag, payload, count_after, error, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?);
	`, e.ID, e.SessionID, e.Seq, e.Tag, e.Payload, e.CountAfter, e.Error, e.CreatedAt)
	return err
}

// LatestSession returns the most recently mounted session, or nil if none.
func (r *JournalRepo) LatestSession(ctx context.Context) (*Session, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, initial_count, iterations, compute_ms, mounted_at
	FROM sessions ORDER BY mounted_at DESC, rowid DESC LIMIT 1`)
	var s Session
	if err := row.Scan(&s.ID, &s.InitialCount, &s.Iterations, &s.ComputeMS, &s.MountedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *JournalRepo) ListActions(ctx context.Context, sessionID string) ([]ActionEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, session_id, seq, tag, payload, count_after, error, created_at
	FROM actions WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ActionEntry
	for rows.Next() {
		var (
			e          ActionEntry
			payload    sql.NullInt64
			countAfter sql.NullInt64
			errText    sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Seq, &e.Tag, &payload, &countAfter, &errText, &e.CreatedAt); err != nil {
			return nil, err
		}
		if payload.Valid {
			e.Payload = &payload.Int64
		}
		if countAfter.Valid {
			e.CountAfter = &countAfter.Int64
		}
		if errText.Valid {
			e.Error = &errText.String
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
