package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edubot/edubot/internal/intent"
	"github.com/edubot/edubot/internal/llm"
	"github.com/edubot/edubot/internal/locale"
	"github.com/edubot/edubot/internal/logger"
	"github.com/edubot/edubot/internal/mcq"
	"github.com/edubot/edubot/internal/store"
)

const (
	replyMaxTokens   = 1024
	replyTemperature = 0.7
)

// Turn is one incoming user message.
type Turn struct {
	Text string
	Lang locale.Language
}

// Intents is the classification of a turn, computed once up front.
type Intents struct {
	MCQ         bool
	Stop        bool
	Explanation bool
	Answer      intent.Letter
	IsAnswer    bool
	Quick       intent.QuickAction
}

// Classify runs every classifier on turn.
func Classify(turn Turn) Intents {
	letter, ok := intent.ParseAnswer(turn.Text)
	return Intents{
		MCQ:         intent.IsMCQRequest(turn.Text, turn.Lang),
		Stop:        intent.IsStopRequest(turn.Text, turn.Lang),
		Explanation: intent.IsExplanationRequest(turn.Text, turn.Lang),
		Answer:      letter,
		IsAnswer:    ok,
		Quick:       intent.DetectQuickAction(turn.Text, turn.Lang),
	}
}

// Effect names what a turn did, for logging and tests.
type Effect string

const (
	EffectExplanation  Effect = "explanation"
	EffectQuizStopped  Effect = "quiz_stopped"
	EffectQuizQuestion Effect = "quiz_question"
	EffectQuizGraded   Effect = "quiz_graded"
	EffectQuizFailed   Effect = "quiz_failed"
	EffectQuizExited   Effect = "quiz_exited"
	EffectLearn        Effect = "learn"
	EffectRandom       Effect = "random"
	EffectHelp         Effect = "help"
	EffectGeneral      Effect = "general"
)

// Outcome is the result of a transition. Session already holds both new
// messages and the updated quiz state; nothing has been persisted yet.
type Outcome struct {
	Session *store.Session
	Reply   string
	Effects []Effect
}

// Machine computes session transitions. It calls the model but never the
// store, so one turn is a pure function of the loaded session plus model
// output.
type Machine struct {
	provider    llm.Provider
	generator   mcq.Generator
	guidance    Guidance
	maxAttempts int
	log         *logger.Logger
	now         func() time.Time
	newID       func() string
}

// MachineOptions configures NewMachine. Zero values take defaults.
type MachineOptions struct {
	Guidance    Guidance
	MaxAttempts int
	Log         *logger.Logger
	Now         func() time.Time
	NewID       func() string
}

// NewMachine builds a Machine around a chat provider and a question generator.
func NewMachine(provider llm.Provider, generator mcq.Generator, opts MachineOptions) *Machine {
	m := &Machine{
		provider:    provider,
		generator:   generator,
		guidance:    opts.Guidance,
		maxAttempts: opts.MaxAttempts,
		log:         opts.Log,
		now:         opts.Now,
		newID:       opts.NewID,
	}
	if m.guidance == nil {
		m.guidance = StaticGuidance("")
	}
	if m.maxAttempts <= 0 {
		m.maxAttempts = mcq.DefaultMaxAttempts
	}
	if m.log == nil {
		m.log = logger.Nop()
	}
	if m.now == nil {
		m.now = func() time.Time { return time.Now().UTC() }
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	return m
}

// Transition handles one turn against sess. sess itself is not modified.
// Model errors on the explanation, quick-action and general paths are
// returned unchanged; quiz generation errors become in-band notices.
func (m *Machine) Transition(ctx context.Context, sess *store.Session, turn Turn) (Outcome, error) {
	s := sess.Clone()
	in := Classify(turn)
	var effects []Effect

	if in.Explanation {
		if last, ok := s.LastBotMessage(); ok && strings.HasSuffix(strings.TrimSpace(last.Text), "?") {
			history := window(s.Messages, contextTurns)
			reply, err := m.complete(ctx, llm.PurposeExplanation, explanationSystem(turn.Lang, last.Text), history, turn.Text)
			if err != nil {
				return Outcome{}, err
			}
			m.appendTurn(s, turn.Text, reply)
			return Outcome{Session: s, Reply: reply, Effects: []Effect{EffectExplanation}}, nil
		}
	}

	quiz := quizFromSession(s)
	if in.MCQ || quizRunning(quiz) {
		if reply, effect, handled := m.quizTurn(ctx, s, quiz, in, turn.Lang); handled {
			m.appendTurn(s, turn.Text, reply)
			return Outcome{Session: s, Reply: reply, Effects: []Effect{effect}}, nil
		}
		effects = append(effects, EffectQuizExited)
	}
	// Past the gate no quiz survives; leftover counts are dropped too.
	if _, none := quiz.(NoQuiz); !none {
		applyQuiz(s, NoQuiz{})
	}

	switch in.Quick.Kind {
	case intent.KindHelp:
		reply := locale.T(turn.Lang, locale.KeyHelp)
		s.Mode = store.ModeGeneral
		m.appendTurn(s, turn.Text, reply)
		return Outcome{Session: s, Reply: reply, Effects: append(effects, EffectHelp)}, nil

	case intent.KindLearn:
		history := window(s.Messages, contextTurns)
		reply, err := m.complete(ctx, llm.PurposeLearn, learnSystem(turn.Lang, in.Quick.Topic), history, turn.Text)
		if err != nil {
			return Outcome{}, err
		}
		s.Mode = store.ModeLearn
		s.CurrentTopic = ""
		if in.Quick.Topic != nil {
			s.CurrentTopic = *in.Quick.Topic
		}
		m.appendTurn(s, turn.Text, reply)
		return Outcome{Session: s, Reply: reply, Effects: append(effects, EffectLearn)}, nil

	case intent.KindRandom:
		history := window(s.Messages, contextTurns)
		reply, err := m.complete(ctx, llm.PurposeRandom, randomSystem(turn.Lang), history, turn.Text)
		if err != nil {
			return Outcome{}, err
		}
		s.Mode = store.ModeRandom
		s.LastRandomQuestion = reply
		m.appendTurn(s, turn.Text, reply)
		return Outcome{Session: s, Reply: reply, Effects: append(effects, EffectRandom)}, nil
	}

	reply, err := m.complete(ctx, llm.PurposeChat, generalSystem(m.guidance.Text(), turn.Lang), s.Messages, turn.Text)
	if err != nil {
		return Outcome{}, err
	}
	s.Mode = store.ModeGeneral
	m.appendTurn(s, turn.Text, reply)
	return Outcome{Session: s, Reply: reply, Effects: append(effects, EffectGeneral)}, nil
}

// quizRunning reports whether the gate must see every turn.
func quizRunning(q QuizState) bool {
	switch q.(type) {
	case AwaitingAnswer, Pending:
		return true
	}
	return false
}

// quizTurn runs the quiz gate. handled is false when the message is not
// quiz input and the caller should exit the quiz and fall through.
func (m *Machine) quizTurn(ctx context.Context, s *store.Session, quiz QuizState, in Intents, lang locale.Language) (string, Effect, bool) {
	if in.Stop {
		applyQuiz(s, NoQuiz{})
		s.Mode = store.ModeGeneral
		return locale.T(lang, locale.KeyMCQGoodbye), EffectQuizStopped, true
	}

	switch q := quiz.(type) {
	case AwaitingAnswer:
		if in.IsAnswer {
			score := q.Score
			if q.Question.IsCorrect(in.Answer) {
				score++
			}
			feedback := mcq.FormatFeedback(q.Question, in.Answer, lang) + "\n" +
				mcq.FormatScore(score, q.Total, lang)
			reply, ok := m.serveQuestion(ctx, s, lang, score, q.Total+1)
			if !ok {
				return feedback + "\n\n" + reply, EffectQuizFailed, true
			}
			return feedback + "\n\n" + locale.T(lang, locale.KeyMCQNext) + "\n\n" + reply, EffectQuizGraded, true
		}
		if in.MCQ {
			return m.serveResult(ctx, s, lang, q.Score, q.Total+1)
		}
		return "", "", false

	case Pending:
		return m.serveResult(ctx, s, lang, q.Score, q.Total+1)

	case Ended:
		return m.serveResult(ctx, s, lang, q.Score, q.Total+1)

	default:
		return m.serveResult(ctx, s, lang, 0, 1)
	}
}

func (m *Machine) serveResult(ctx context.Context, s *store.Session, lang locale.Language, score, total int) (string, Effect, bool) {
	reply, ok := m.serveQuestion(ctx, s, lang, score, total)
	if !ok {
		return reply, EffectQuizFailed, true
	}
	return reply, EffectQuizQuestion, true
}

// serveQuestion generates the next question and moves the session to
// AwaitingAnswer, or clears the quiz and returns the failure notice.
func (m *Machine) serveQuestion(ctx context.Context, s *store.Session, lang locale.Language, score, total int) (string, bool) {
	res := mcq.GenerateValid(ctx, m.generator, lang, m.maxAttempts)
	if !res.OK() {
		m.log.Warn("quiz question unavailable",
			"session_id", s.SessionID,
			"language", lang.String(),
			"attempts", res.Attempts,
			"error", fmt.Sprint(res.Err),
		)
		applyQuiz(s, NoQuiz{})
		s.Mode = store.ModeGeneral
		return locale.T(lang, locale.KeyMCQFailed), false
	}
	applyQuiz(s, AwaitingAnswer{Question: res.Record, Score: score, Total: total})
	return mcq.FormatQuestion(res.Record, lang, total), true
}

func (m *Machine) complete(ctx context.Context, purpose, system string, history []store.Message, text string) (string, error) {
	resp, err := m.provider.Generate(llm.WithPurpose(ctx, purpose), llm.Request{
		System:      system,
		Messages:    toLLM(history, text),
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

func (m *Machine) appendTurn(s *store.Session, userText, reply string) {
	now := m.now()
	s.Messages = append(s.Messages,
		store.Message{ID: m.newID(), Role: store.RoleUser, Text: userText, Timestamp: now},
		store.Message{ID: m.newID(), Role: store.RoleBot, Text: reply, Timestamp: now},
	)
	s.UpdatedAt = now
}
