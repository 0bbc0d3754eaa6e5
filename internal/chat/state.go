package chat

import (
	"github.com/edubot/edubot/internal/intent"
	"github.com/edubot/edubot/internal/mcq"
	"github.com/edubot/edubot/internal/store"
)

// QuizState is the quiz progress of a session. Exactly one of NoQuiz,
// AwaitingAnswer, Pending or Ended. All quiz branching switches on this value; the
// session's Mode field is only a projection of it.
type QuizState interface {
	quizState()
}

// NoQuiz means no quiz is in progress.
type NoQuiz struct{}

// AwaitingAnswer means Question was shown and the next letter grades it.
// Total counts questions served so far, including Question.
type AwaitingAnswer struct {
	Question *mcq.Record
	Score    int
	Total    int
}

// Pending means a quiz is running but no question is open, e.g. a record
// saved as active without its current question. Any turn that does not
// stop the quiz serves the next question.
type Pending struct {
	Score int
	Total int
}

// Ended means a quiz is over but its counts are still on record. It is
// stored as an absent mcqState.
type Ended struct {
	Score int
	Total int
}

func (NoQuiz) quizState()         {}
func (AwaitingAnswer) quizState() {}
func (Pending) quizState()        {}
func (Ended) quizState()          {}

// quizFromSession reads the stored mcqState into a QuizState.
func quizFromSession(s *store.Session) QuizState {
	st := s.MCQState
	switch {
	case st == nil:
		return NoQuiz{}
	case st.Active && st.CurrentMCQ != nil:
		return AwaitingAnswer{
			Question: recordFromStore(st.CurrentMCQ),
			Score:    st.Score,
			Total:    st.Total,
		}
	case st.Active:
		return Pending{Score: st.Score, Total: st.Total}
	default:
		return Ended{Score: st.Score, Total: st.Total}
	}
}

// applyQuiz writes q back to the session and projects Mode.
func applyQuiz(s *store.Session, q QuizState) {
	switch q := q.(type) {
	case AwaitingAnswer:
		s.MCQState = &store.MCQState{
			Active:     true,
			CurrentMCQ: recordToStore(q.Question),
			Score:      q.Score,
			Total:      q.Total,
		}
		s.Mode = store.ModeMCQ
	default:
		s.MCQState = nil
		if s.Mode == store.ModeMCQ {
			s.Mode = store.ModeGeneral
		}
	}
}

func recordFromStore(r *store.MCQRecord) *mcq.Record {
	return &mcq.Record{
		Question:    r.Question,
		Options:     append([]string(nil), r.Options...),
		Answer:      intent.Letter(r.Answer),
		Explanation: r.Explanation,
	}
}

func recordToStore(r *mcq.Record) *store.MCQRecord {
	return &store.MCQRecord{
		Question:    r.Question,
		Options:     append([]string(nil), r.Options...),
		Answer:      string(r.Answer),
		Explanation: r.Explanation,
	}
}
