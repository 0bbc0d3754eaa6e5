package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process backend. Data is lost on exit. It is used by
// tests and by `edubot ask` when no database is configured.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]*Session
	users    map[string]*User
	events   []LLMEvent
	nextID   int64
}

var _ Backend = (*Memory)(nil)

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]*Session),
		users:    make(map[string]*User),
	}
}

func (m *Memory) SessionRepo() SessionRepo        { return (*memorySessions)(m) }
func (m *Memory) UserRepo() UserRepo              { return (*memoryUsers)(m) }
func (m *Memory) EventRepo() EventRepo            { return (*memoryEvents)(m) }
func (m *Memory) Ping(ctx context.Context) error { return nil }
func (m *Memory) Close() error                   { return nil }

type memorySessions Memory

func (r *memorySessions) Get(ctx context.Context, sessionID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (r *memorySessions) Save(ctx context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.sessions[s.SessionID]
	switch {
	case s.Version == 0 && exists:
		return ErrStaleVersion
	case s.Version != 0 && (!exists || cur.Version != s.Version):
		return ErrStaleVersion
	}

	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	s.Version++
	r.sessions[s.SessionID] = s.Clone()
	return nil
}

func (r *memorySessions) List(ctx context.Context, filter SessionFilter) ([]*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Session
	for _, s := range r.sessions {
		if filter.SessionID != "" && s.SessionID != filter.SessionID {
			continue
		}
		if filter.UserID != "" && s.UserID != filter.UserID {
			continue
		}
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *memorySessions) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, sessionID)
	return nil
}

type memoryUsers Memory

func (r *memoryUsers) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username ||
			(u.Email != "" && existing.Email == u.Email) {
			return ErrDuplicate
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	c := *u
	r.users[u.ID] = &c
	return nil
}

func (r *memoryUsers) FindByLogin(ctx context.Context, login string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == login || (u.Email != "" && u.Email == login) {
			c := *u
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

type memoryEvents Memory

func (r *memoryEvents) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.events = append(r.events, LLMEvent{
		ID:                  r.nextID,
		Timestamp:           time.Now().UTC(),
		LLMRequestEventData: data,
	})
	return nil
}

func (r *memoryEvents) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []LLMEvent
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if opts.Purpose != "" && e.Purpose != opts.Purpose {
			continue
		}
		if !opts.From.IsZero() && e.Timestamp.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && e.Timestamp.After(opts.To) {
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (r *memoryEvents) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.ID == id {
			c := e
			return &c, nil
		}
	}
	return nil, ErrNotFound
}
