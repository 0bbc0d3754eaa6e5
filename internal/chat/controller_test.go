package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/edubot/edubot/internal/llm"
	"github.com/edubot/edubot/internal/locale"
	"github.com/edubot/edubot/internal/lock"
	"github.com/edubot/edubot/internal/store"
)

func newTestController(t *testing.T, f *fixture) (*Controller, store.SessionRepo) {
	t.Helper()
	repo := store.NewMemory().SessionRepo()
	return NewController(repo, lock.NewLocal(), f.machine, 0, nil), repo
}

func TestHandle_NewSessionStartsQuiz(t *testing.T) {
	f := newFixture(t, "")
	f.quizReplies(quizBundle("Who makes laws?", "B", "Parliament."))
	c, repo := newTestController(t, f)

	reply, err := c.Handle(context.Background(), Request{SessionID: "new-1", Message: "mcq", Language: locale.English})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(reply, "Please type A, B, C, or D:") {
		t.Errorf("reply:\n%s", reply)
	}

	sess, err := repo.Get(context.Background(), "new-1")
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if sess.MCQState == nil || !sess.MCQState.Active {
		t.Fatalf("mcqState = %+v", sess.MCQState)
	}
	if sess.Messages[len(sess.Messages)-1].Text != reply {
		t.Error("stored history does not end with the returned reply")
	}
}

func TestHandle_SinhalaStopMidQuiz(t *testing.T) {
	f := newFixture(t, "")
	c, repo := newTestController(t, f)
	ctx := context.Background()

	if err := repo.Save(ctx, awaitingSession(1, 2)); err != nil {
		t.Fatal(err)
	}

	reply, err := c.Handle(ctx, Request{SessionID: "s1", Message: "stop", Language: locale.Sinhala})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	want := "හරි, අපි MCQ අභ්‍යාසය නැවැත්තුවා. ඔබ හොඳින් උත්සාහ කළා! දේශපාලන විද්‍යාව ගැන ඕනෑම දෙයක් මගෙන් අහන්න."
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	sess, _ := repo.Get(ctx, "s1")
	if sess.MCQState != nil {
		t.Errorf("mcqState = %+v, want absent", sess.MCQState)
	}
}

func TestHandle_AttachesUserID(t *testing.T) {
	f := newFixture(t, "")
	f.chatReplies("one", "two")
	c, repo := newTestController(t, f)
	ctx := context.Background()

	if _, err := c.Handle(ctx, Request{SessionID: "s1", Message: "hi", Language: locale.English}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Handle(ctx, Request{SessionID: "s1", UserID: "u9", Message: "hello", Language: locale.English}); err != nil {
		t.Fatal(err)
	}
	sess, _ := repo.Get(ctx, "s1")
	if sess.UserID != "u9" {
		t.Errorf("userId = %q", sess.UserID)
	}
	if len(sess.Messages) != 4 || sess.Version != 2 {
		t.Errorf("messages %d version %d", len(sess.Messages), sess.Version)
	}
}

func TestHandle_InvalidRequest(t *testing.T) {
	f := newFixture(t, "")
	c, repo := newTestController(t, f)

	for _, req := range []Request{
		{SessionID: "s1", Message: "  "},
		{SessionID: "", Message: "hi"},
	} {
		if _, err := c.Handle(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("Handle(%+v) = %v, want ErrInvalidRequest", req, err)
		}
	}
	if list, _ := repo.List(context.Background(), store.SessionFilter{}); len(list) != 0 {
		t.Error("invalid requests must not touch the store")
	}
	if f.chat.CallCount() != 0 {
		t.Error("invalid requests must not call the model")
	}
}

func TestHandle_GatewayErrorNotPersisted(t *testing.T) {
	f := newFixture(t, "")
	f.chat.AddResponse(llm.MockResponse{Err: &llm.ErrTimeout{}})
	c, repo := newTestController(t, f)

	_, err := c.Handle(context.Background(), Request{SessionID: "s1", Message: "hi", Language: locale.English})
	var timeout *llm.ErrTimeout
	if !errors.As(err, &timeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
	if _, err := repo.Get(context.Background(), "s1"); !errors.Is(err, store.ErrNotFound) {
		t.Error("failed turn must not create the session")
	}
}

func TestHandle_SerializesConcurrentTurns(t *testing.T) {
	const n = 10
	f := newFixture(t, "")
	for i := 0; i < n; i++ {
		f.chatReplies(fmt.Sprintf("reply %d", i))
	}
	c, repo := newTestController(t, f)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.Handle(context.Background(), Request{
				SessionID: "shared", Message: fmt.Sprintf("hello %d", i), Language: locale.English,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}

	sess, _ := repo.Get(context.Background(), "shared")
	if len(sess.Messages) != 2*n {
		t.Fatalf("messages = %d, want %d", len(sess.Messages), 2*n)
	}
	for i := 0; i < len(sess.Messages); i += 2 {
		if sess.Messages[i].Role != store.RoleUser || sess.Messages[i+1].Role != store.RoleBot {
			t.Fatalf("turn %d interleaved: %+v", i/2, sess.Messages[i:i+2])
		}
	}
}

func TestFileGuidance(t *testing.T) {
	if got := (FileGuidance{Path: "/does/not/exist"}).Text(); got != "" {
		t.Errorf("missing file = %q, want empty", got)
	}
	p := t.TempDir() + "/guide.txt"
	if err := writeFile(p, "  unit 1  \n"); err != nil {
		t.Fatal(err)
	}
	if got := (FileGuidance{Path: p}).Text(); got != "unit 1" {
		t.Errorf("got %q", got)
	}
}
