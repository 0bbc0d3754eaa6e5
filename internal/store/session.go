package store

import "time"

// Role is the author of a chat message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleUser || r == RoleBot }

// Mode is the display label of what the session was last doing. Nothing
// branches on it.
type Mode string

const (
	ModeGeneral Mode = "general"
	ModeMCQ     Mode = "mcq"
	ModeLearn   Mode = "learn"
	ModeRandom  Mode = "random"
)

// Message is one entry of a session's append-only log.
type Message struct {
	ID        string    `json:"id" bson:"id" yaml:"id"`
	Role      Role      `json:"role" bson:"role" yaml:"role"`
	Text      string    `json:"text" bson:"text" yaml:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp" yaml:"timestamp"`
}

// MCQRecord is the persisted form of a multiple-choice question.
type MCQRecord struct {
	Question    string   `json:"question" bson:"question" yaml:"question"`
	Options     []string `json:"options" bson:"options" yaml:"options"`
	Answer      string   `json:"answer" bson:"answer" yaml:"answer"`
	Explanation string   `json:"explanation" bson:"explanation" yaml:"explanation"`
}

// MCQState is the persisted quiz progress. It is nil on a session unless a
// quiz is in progress.
type MCQState struct {
	Active     bool       `json:"active" bson:"active" yaml:"active"`
	CurrentMCQ *MCQRecord `json:"currentMCQ,omitempty" bson:"currentMCQ,omitempty" yaml:"currentMCQ,omitempty"`
	Score      int        `json:"score" bson:"score" yaml:"score"`
	Total      int        `json:"total" bson:"total" yaml:"total"`
}

// Session is a client-identified conversation thread.
type Session struct {
	SessionID          string    `json:"sessionId" bson:"sessionId" yaml:"sessionId"`
	UserID             string    `json:"userId,omitempty" bson:"userId,omitempty" yaml:"userId,omitempty"`
	Title              string    `json:"title,omitempty" bson:"title,omitempty" yaml:"title,omitempty"`
	Messages           []Message `json:"messages" bson:"messages" yaml:"messages"`
	Mode               Mode      `json:"mode,omitempty" bson:"mode,omitempty" yaml:"mode,omitempty"`
	MCQState           *MCQState `json:"mcqState,omitempty" bson:"mcqState,omitempty" yaml:"mcqState,omitempty"`
	CurrentTopic       string    `json:"currentTopic,omitempty" bson:"currentTopic,omitempty" yaml:"currentTopic,omitempty"`
	LastRandomQuestion string    `json:"lastRandomQuestion,omitempty" bson:"lastRandomQuestion,omitempty" yaml:"lastRandomQuestion,omitempty"`

	// Version is bumped on every successful Save. Zero means the session
	// has never been stored.
	Version   int64     `json:"version" bson:"version" yaml:"version"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" yaml:"updatedAt"`
}

// NewSession returns an unsaved session.
func NewSession(sessionID, userID string, now time.Time) *Session {
	return &Session{
		SessionID: sessionID,
		UserID:    userID,
		Mode:      ModeGeneral,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Messages = append([]Message(nil), s.Messages...)
	if c.Messages == nil {
		c.Messages = []Message{}
	}
	if s.MCQState != nil {
		st := *s.MCQState
		if st.CurrentMCQ != nil {
			rec := *st.CurrentMCQ
			rec.Options = append([]string(nil), rec.Options...)
			st.CurrentMCQ = &rec
		}
		c.MCQState = &st
	}
	return &c
}

// LastBotMessage returns the most recent bot message, if any.
func (s *Session) LastBotMessage() (Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleBot {
			return s.Messages[i], true
		}
	}
	return Message{}, false
}

// DisplayTitle is the explicit title, or the first user message cut to a
// readable length.
func (s *Session) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			r := []rune(m.Text)
			if len(r) > 40 {
				return string(r[:40]) + "…"
			}
			return m.Text
		}
	}
	return "(empty)"
}

// User is a registered account.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
