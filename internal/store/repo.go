package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a session, user or event does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStaleVersion is returned by SessionRepo.Save when the stored
	// version no longer matches the one the caller loaded.
	ErrStaleVersion = errors.New("stale session version")

	// ErrDuplicate is returned when a unique key (username, email) is taken.
	ErrDuplicate = errors.New("duplicate key")
)

// SessionFilter selects sessions for listing. Empty fields match anything.
type SessionFilter struct {
	SessionID string
	UserID    string
	Limit     int
}

// SessionRepo persists chat sessions.
type SessionRepo interface {
	// Get returns the session or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Save inserts a session whose Version is 0, or replaces the stored
	// session if its version equals s.Version. On success s.Version is
	// incremented. A mismatch returns ErrStaleVersion.
	Save(ctx context.Context, s *Session) error

	// List returns sessions matching filter, most recently updated first.
	List(ctx context.Context, filter SessionFilter) ([]*Session, error)

	// Delete removes a session. Missing sessions return ErrNotFound.
	Delete(ctx context.Context, sessionID string) error
}

// UserRepo persists registered users.
type UserRepo interface {
	// Create stores u. A taken username or email returns ErrDuplicate.
	Create(ctx context.Context, u *User) error

	// FindByLogin looks a user up by username or email.
	FindByLogin(ctx context.Context, login string) (*User, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single model request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLMRequestEventData.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo records and reads model request events.
type EventRepo interface {
	// AppendLLMRequest records a model API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)
}

// Backend bundles the repositories of one storage engine.
type Backend interface {
	SessionRepo() SessionRepo
	UserRepo() UserRepo
	EventRepo() EventRepo
	Ping(ctx context.Context) error
	Close() error
}
