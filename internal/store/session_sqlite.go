package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type sqliteSessionRepo struct {
	db *sql.DB
}

func (r *sqliteSessionRepo) Get(ctx context.Context, sessionID string) (*Session, error) {
	var data string
	var version int64
	err := r.db.QueryRowContext(ctx,
		`SELECT data, version FROM sessions WHERE session_id = ?`, sessionID,
	).Scan(&data, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	return decodeSession(data, version)
}

func (r *sqliteSessionRepo) Save(ctx context.Context, s *Session) error {
	next := *s
	next.Version = s.Version + 1
	if next.UpdatedAt.IsZero() {
		next.UpdatedAt = time.Now().UTC()
	}
	if next.CreatedAt.IsZero() {
		next.CreatedAt = next.UpdatedAt
	}
	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if s.Version == 0 {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO sessions (session_id, user_id, version, data, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, next.SessionID, next.UserID, next.Version, string(data), next.CreatedAt, next.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrStaleVersion
			}
			return fmt.Errorf("insert session: %w", err)
		}
	} else {
		res, err := r.db.ExecContext(ctx, `
			UPDATE sessions SET user_id = ?, version = ?, data = ?, updated_at = ?
			WHERE session_id = ? AND version = ?
		`, next.UserID, next.Version, string(data), next.UpdatedAt, next.SessionID, s.Version)
		if err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return ErrStaleVersion
		}
	}

	s.Version = next.Version
	s.CreatedAt = next.CreatedAt
	s.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *sqliteSessionRepo) List(ctx context.Context, filter SessionFilter) ([]*Session, error) {
	query := `SELECT data, version FROM sessions WHERE 1=1`
	var args []any
	if filter.SessionID != "" {
		query += ` AND session_id = ?`
		args = append(args, filter.SessionID)
	}
	if filter.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	query += ` ORDER BY updated_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []*Session
	for rows.Next() {
		var data string
		var version int64
		if err := rows.Scan(&data, &version); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s, err := decodeSession(data, version)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sqliteSessionRepo) Delete(ctx context.Context, sessionID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeSession(data string, version int64) (*Session, error) {
	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if s.Messages == nil {
		s.Messages = []Message{}
	}
	s.Version = version
	return &s, nil
}

// isUniqueViolation matches the modernc driver's constraint error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
