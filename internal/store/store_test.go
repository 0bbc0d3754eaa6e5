package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// backends returns every backend that runs without external services.
func backends(t *testing.T) map[string]Backend {
	return map[string]Backend{
		"sqlite": openTestStore(t),
		"memory": NewMemory(),
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSessionSaveAndGet(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := b.SessionRepo()

			if _, err := repo.Get(ctx, "s1"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get missing = %v, want ErrNotFound", err)
			}

			s := NewSession("s1", "u1", time.Now().UTC())
			s.Messages = append(s.Messages, Message{ID: "m1", Role: RoleUser, Text: "hello", Timestamp: time.Now().UTC()})
			s.Mode = ModeMCQ
			s.MCQState = &MCQState{
				Active: true,
				CurrentMCQ: &MCQRecord{
					Question: "Who?", Options: []string{"A. a", "B. b", "C. c", "D. d"},
					Answer: "B", Explanation: "because",
				},
				Total: 1,
			}
			if err := repo.Save(ctx, s); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if s.Version != 1 {
				t.Errorf("Version = %d, want 1", s.Version)
			}

			got, err := repo.Get(ctx, "s1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.UserID != "u1" || got.Mode != ModeMCQ || got.Version != 1 {
				t.Errorf("got %+v", got)
			}
			if len(got.Messages) != 1 || got.Messages[0].Text != "hello" {
				t.Errorf("Messages = %+v", got.Messages)
			}
			if got.MCQState == nil || got.MCQState.CurrentMCQ == nil || got.MCQState.CurrentMCQ.Answer != "B" {
				t.Errorf("MCQState = %+v", got.MCQState)
			}
		})
	}
}

func TestSessionOptimisticVersion(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := b.SessionRepo()

			s := NewSession("s1", "", time.Now().UTC())
			if err := repo.Save(ctx, s); err != nil {
				t.Fatalf("Save: %v", err)
			}

			// A second insert of the same id loses.
			dup := NewSession("s1", "", time.Now().UTC())
			if err := repo.Save(ctx, dup); !errors.Is(err, ErrStaleVersion) {
				t.Fatalf("duplicate insert = %v, want ErrStaleVersion", err)
			}

			a, _ := repo.Get(ctx, "s1")
			bb, _ := repo.Get(ctx, "s1")

			a.Title = "first"
			if err := repo.Save(ctx, a); err != nil {
				t.Fatalf("Save a: %v", err)
			}
			bb.Title = "second"
			if err := repo.Save(ctx, bb); !errors.Is(err, ErrStaleVersion) {
				t.Fatalf("Save stale = %v, want ErrStaleVersion", err)
			}

			got, _ := repo.Get(ctx, "s1")
			if got.Title != "first" || got.Version != 2 {
				t.Errorf("got title %q version %d", got.Title, got.Version)
			}
		})
	}
}

func TestSessionListAndDelete(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := b.SessionRepo()
			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

			for i, id := range []string{"a", "b", "c"} {
				user := "u1"
				if id == "c" {
					user = "u2"
				}
				s := NewSession(id, user, base)
				s.UpdatedAt = base.Add(time.Duration(i) * time.Minute)
				if err := repo.Save(ctx, s); err != nil {
					t.Fatalf("Save %s: %v", id, err)
				}
			}

			list, err := repo.List(ctx, SessionFilter{UserID: "u1"})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(list) != 2 || list[0].SessionID != "b" || list[1].SessionID != "a" {
				t.Fatalf("List(u1) order wrong: %v", ids(list))
			}

			list, _ = repo.List(ctx, SessionFilter{SessionID: "c"})
			if len(list) != 1 || list[0].UserID != "u2" {
				t.Errorf("List(c) = %v", ids(list))
			}

			list, _ = repo.List(ctx, SessionFilter{Limit: 1})
			if len(list) != 1 || list[0].SessionID != "c" {
				t.Errorf("List(limit 1) = %v", ids(list))
			}

			if err := repo.Delete(ctx, "a"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if err := repo.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Delete twice = %v, want ErrNotFound", err)
			}
		})
	}
}

func ids(list []*Session) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.SessionID
	}
	return out
}

func TestUserCreateAndFind(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := b.UserRepo()

			u := &User{ID: "u1", Username: "nimal", Email: "nimal@example.com", PasswordHash: "x"}
			if err := repo.Create(ctx, u); err != nil {
				t.Fatalf("Create: %v", err)
			}
			err := repo.Create(ctx, &User{ID: "u2", Username: "nimal", PasswordHash: "y"})
			if !errors.Is(err, ErrDuplicate) {
				t.Fatalf("duplicate username = %v, want ErrDuplicate", err)
			}

			for _, login := range []string{"nimal", "nimal@example.com"} {
				got, err := repo.FindByLogin(ctx, login)
				if err != nil {
					t.Fatalf("FindByLogin(%q): %v", login, err)
				}
				if got.ID != "u1" {
					t.Errorf("FindByLogin(%q).ID = %q", login, got.ID)
				}
			}
			if _, err := repo.FindByLogin(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
				t.Errorf("FindByLogin missing = %v", err)
			}
		})
	}
}

func TestEventRepo(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := b.EventRepo()

			for _, p := range []string{"chat", "mcq", "chat"} {
				err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
					Provider: "mock", Model: "m", Purpose: p,
					InputTokens: 10, OutputTokens: 5, LatencyMs: 42, Success: true,
					RequestBody: "req", ResponseBody: "resp",
				})
				if err != nil {
					t.Fatalf("Append: %v", err)
				}
			}

			all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("len = %d, want 3", len(all))
			}
			if all[0].ID <= all[2].ID {
				t.Errorf("events not newest first: %d, %d", all[0].ID, all[2].ID)
			}

			chat, _ := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "chat"})
			if len(chat) != 2 {
				t.Errorf("chat events = %d, want 2", len(chat))
			}
			limited, _ := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
			if len(limited) != 1 {
				t.Errorf("limited = %d, want 1", len(limited))
			}

			e, err := repo.GetLLMEvent(ctx, all[0].ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if e.RequestBody != "req" || e.ResponseBody != "resp" || !e.Success {
				t.Errorf("event = %+v", e)
			}
			if _, err := repo.GetLLMEvent(ctx, 9999); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get missing = %v", err)
			}
		})
	}
}

func TestSessionHelpers(t *testing.T) {
	s := NewSession("s", "", time.Now())
	if s.DisplayTitle() != "(empty)" {
		t.Errorf("DisplayTitle empty = %q", s.DisplayTitle())
	}
	s.Messages = []Message{
		{Role: RoleUser, Text: "What is federalism?"},
		{Role: RoleBot, Text: "A system..."},
		{Role: RoleUser, Text: "more"},
	}
	if s.DisplayTitle() != "What is federalism?" {
		t.Errorf("DisplayTitle = %q", s.DisplayTitle())
	}
	m, ok := s.LastBotMessage()
	if !ok || m.Text != "A system..." {
		t.Errorf("LastBotMessage = %+v, %v", m, ok)
	}

	s.MCQState = &MCQState{CurrentMCQ: &MCQRecord{Options: []string{"A. x"}}}
	c := s.Clone()
	c.Messages[0].Text = "changed"
	c.MCQState.CurrentMCQ.Options[0] = "changed"
	if s.Messages[0].Text == "changed" || s.MCQState.CurrentMCQ.Options[0] == "changed" {
		t.Error("Clone shares memory with original")
	}
}

func TestOpenBackendUnknown(t *testing.T) {
	if _, err := OpenBackend(context.Background(), Options{Driver: "postgres"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
	b, err := OpenBackend(context.Background(), Options{Driver: DriverMemory})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := b.(*Memory); !ok {
		t.Errorf("got %T, want *Memory", b)
	}
}
