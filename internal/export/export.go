// Package export writes chat sessions to files in several formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/edubot/edubot/internal/store"
)

// Exporter writes one session.
type Exporter interface {
	Export(s *store.Session, w io.Writer) error
	Extension() string
}

// Formats lists the accepted format names.
var Formats = []string{"json", "jsonl", "yaml", "md"}

// New returns the exporter for format.
func New(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "json":
		return JSON{}, nil
	case "jsonl":
		return JSONL{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	case "md", "markdown":
		return Markdown{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// JSON writes the whole session, indented.
type JSON struct{}

func (JSON) Export(s *store.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func (JSON) Extension() string { return "json" }

// JSONL writes one message per line.
type JSONL struct{}

type jsonlLine struct {
	SessionID string    `json:"sessionId"`
	ID        string    `json:"id,omitempty"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func (JSONL) Export(s *store.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, m := range s.Messages {
		line := jsonlLine{
			SessionID: s.SessionID,
			ID:        m.ID,
			Role:      string(m.Role),
			Text:      m.Text,
			Timestamp: m.Timestamp,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("encode message %s: %w", m.ID, err)
		}
	}
	return nil
}

func (JSONL) Extension() string { return "jsonl" }

// YAML writes the whole session.
type YAML struct{}

func (YAML) Export(s *store.Session, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func (YAML) Extension() string { return "yaml" }

// Markdown writes a readable transcript.
type Markdown struct{}

func (Markdown) Export(s *store.Session, w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.DisplayTitle())
	fmt.Fprintf(&b, "**Session:** %s  \n", s.SessionID)
	if s.UserID != "" {
		fmt.Fprintf(&b, "**User:** %s  \n", s.UserID)
	}
	fmt.Fprintf(&b, "**Mode:** %s  \n", s.Mode)
	if st := s.MCQState; st != nil && st.Total > 0 {
		fmt.Fprintf(&b, "**Quiz score:** %d/%d  \n", st.Score, st.Total)
	}
	fmt.Fprintf(&b, "**Messages:** %d\n\n---\n\n", len(s.Messages))

	for i, m := range s.Messages {
		who := "Student"
		if m.Role == store.RoleBot {
			who = "EduBot"
		}
		stamp := ""
		if !m.Timestamp.IsZero() {
			stamp = " (" + m.Timestamp.UTC().Format(time.RFC3339) + ")"
		}
		fmt.Fprintf(&b, "**%s:**%s\n\n%s\n\n", who, stamp, escapeMarkdown(m.Text))
		if i < len(s.Messages)-1 {
			b.WriteString("---\n\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (Markdown) Extension() string { return "md" }

// escapeMarkdown escapes bold and underline markers outside fenced code.
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	inCode := false
	for i, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		line = strings.ReplaceAll(line, "**", `\*\*`)
		lines[i] = strings.ReplaceAll(line, "__", `\_\_`)
	}
	return strings.Join(lines, "\n")
}
