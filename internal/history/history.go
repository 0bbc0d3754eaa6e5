// Package history implements the saved-conversation operations used by the
// sidebar of the web client: save a message, list, delete, rename and edit.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edubot/edubot/internal/lock"
	"github.com/edubot/edubot/internal/store"
)

var (
	// ErrNotUserMessage is returned when an edit targets a bot message.
	ErrNotUserMessage = errors.New("only user messages can be edited")

	// ErrInvalidInput is returned for missing ids, text or roles.
	ErrInvalidInput = errors.New("invalid input")
)

// maxStaleRetries bounds how often an update is replayed after losing an
// optimistic version race to another instance.
const maxStaleRetries = 3

// Service mutates sessions under the same per-session lock as chat turns.
type Service struct {
	sessions store.SessionRepo
	locker   lock.Locker
	lockWait time.Duration
	now      func() time.Time
}

// New creates a Service. A nil locker serializes in process. lockWait bounds
// how long a mutation queues behind a running chat turn before giving up
// with lock.ErrBusy; zero means one minute.
func New(sessions store.SessionRepo, locker lock.Locker, lockWait time.Duration) *Service {
	if locker == nil {
		locker = lock.NewLocal()
	}
	if lockWait <= 0 {
		lockWait = time.Minute
	}
	return &Service{
		sessions: sessions,
		locker:   locker,
		lockWait: lockWait,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// lockSession takes the per-session lock, waiting at most lockWait.
func (s *Service) lockSession(ctx context.Context, sessionID string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()
	unlock, err := s.locker.Lock(lockCtx, "session:"+sessionID)
	if err != nil {
		return nil, fmt.Errorf("lock session: %w", err)
	}
	return unlock, nil
}

// SaveInput is a message to append to a session.
type SaveInput struct {
	SessionID string
	UserID    string
	Role      store.Role
	Text      string
}

// SaveMessage appends a message, creating the session if needed. Messages
// are not deduplicated.
func (s *Service) SaveMessage(ctx context.Context, in SaveInput) (*store.Session, error) {
	if strings.TrimSpace(in.SessionID) == "" || strings.TrimSpace(in.Text) == "" || !in.Role.Valid() {
		return nil, fmt.Errorf("%w: sessionId and message (with text and role) are required", ErrInvalidInput)
	}
	return s.update(ctx, in.SessionID, true, func(sess *store.Session) error {
		if sess.UserID == "" && in.UserID != "" {
			sess.UserID = in.UserID
		}
		sess.Messages = append(sess.Messages, store.Message{
			ID:        uuid.NewString(),
			Role:      in.Role,
			Text:      in.Text,
			Timestamp: s.now(),
		})
		return nil
	})
}

// List returns sessions for a session id or a user id, newest first.
func (s *Service) List(ctx context.Context, sessionID, userID string) ([]*store.Session, error) {
	if sessionID == "" && userID == "" {
		return nil, fmt.Errorf("%w: sessionId or userId is required", ErrInvalidInput)
	}
	filter := store.SessionFilter{SessionID: sessionID}
	if sessionID == "" {
		filter.UserID = userID
	}
	return s.sessions.List(ctx, filter)
}

// Delete removes a session.
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	unlock, err := s.lockSession(ctx, sessionID)
	if err != nil {
		return err
	}
	defer unlock()
	return s.sessions.Delete(ctx, sessionID)
}

// Rename sets the session title.
func (s *Service) Rename(ctx context.Context, sessionID, title string) (*store.Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return s.update(ctx, sessionID, false, func(sess *store.Session) error {
		sess.Title = title
		return nil
	})
}

// EditMessage replaces the text of one user message.
func (s *Service) EditMessage(ctx context.Context, sessionID, messageID, text string) (*store.Session, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	return s.update(ctx, sessionID, false, func(sess *store.Session) error {
		for i := range sess.Messages {
			if sess.Messages[i].ID != messageID {
				continue
			}
			if sess.Messages[i].Role != store.RoleUser {
				return ErrNotUserMessage
			}
			sess.Messages[i].Text = text
			return nil
		}
		return store.ErrNotFound
	})
}

// update loads, mutates and saves one session under its lock, replaying fn
// when another writer got there first.
func (s *Service) update(ctx context.Context, sessionID string, create bool, fn func(*store.Session) error) (*store.Session, error) {
	unlock, err := s.lockSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	for attempt := 0; ; attempt++ {
		sess, err := s.sessions.Get(ctx, sessionID)
		switch {
		case errors.Is(err, store.ErrNotFound) && create:
			sess = store.NewSession(sessionID, "", s.now())
		case err != nil:
			return nil, err
		}

		if err := fn(sess); err != nil {
			return nil, err
		}
		sess.UpdatedAt = s.now()

		err = s.sessions.Save(ctx, sess)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, store.ErrStaleVersion) || attempt+1 >= maxStaleRetries {
			return nil, err
		}
	}
}
