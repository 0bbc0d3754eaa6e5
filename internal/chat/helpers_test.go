package chat

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/edubot/edubot/internal/llm"
	"github.com/edubot/edubot/internal/mcq"
	"github.com/edubot/edubot/internal/store"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// quizBundle renders a tri-lingual bundle whose correct answer is answer.
func quizBundle(question, answer, explanation string) string {
	var blocks []string
	for _, name := range []string{"English", "Sinhala", "Tamil"} {
		blocks = append(blocks, fmt.Sprintf(`# Language: %s
Q1. %s (%s)
A. The President
B. Parliament
C. The Supreme Court
D. The Cabinet
Answer: %s
Explanation: %s`, name, question, name, answer, explanation))
	}
	return strings.Join(blocks, "\n---\n")
}

type fixture struct {
	chat    *llm.MockProvider
	quiz    *llm.MockProvider
	machine *Machine
}

func newFixture(t *testing.T, guidance string) *fixture {
	t.Helper()
	f := &fixture{
		chat: llm.NewMockProvider(),
		quiz: llm.NewMockProvider(),
	}
	seq := 0
	f.machine = NewMachine(f.chat, mcq.New(f.quiz, mcq.DefaultConfig(), nil), MachineOptions{
		Guidance:    StaticGuidance(guidance),
		MaxAttempts: 1,
		Now:         func() time.Time { return testNow },
		NewID: func() string {
			seq++
			return fmt.Sprintf("m%d", seq)
		},
	})
	return f
}

func (f *fixture) chatReplies(texts ...string) {
	for _, s := range texts {
		f.chat.AddResponse(llm.MockResponse{Content: s})
	}
}

func (f *fixture) quizReplies(texts ...string) {
	for _, s := range texts {
		f.quiz.AddResponse(llm.MockResponse{Content: s})
	}
}

// awaitingSession returns a session mid-quiz whose open question has answer B.
func awaitingSession(score, total int) *store.Session {
	s := store.NewSession("s1", "", testNow)
	s.Mode = store.ModeMCQ
	s.Messages = []store.Message{
		{ID: "u0", Role: store.RoleUser, Text: "mcq", Timestamp: testNow},
		{ID: "b0", Role: store.RoleBot, Text: "Question 1:\n...\nPlease type A, B, C, or D:", Timestamp: testNow},
	}
	s.MCQState = &store.MCQState{
		Active: true,
		CurrentMCQ: &store.MCQRecord{
			Question:    "Which body holds legislative power?",
			Options:     []string{"The President", "Parliament", "The Supreme Court", "The Cabinet"},
			Answer:      "B",
			Explanation: "Article 4(a) vests legislative power in Parliament.",
		},
		Score: score,
		Total: total,
	}
	return s
}

func hasEffect(effects []Effect, e Effect) bool {
	for _, x := range effects {
		if x == e {
			return true
		}
	}
	return false
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
