package mcq

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/edubot/edubot/internal/intent"
)

// ParseError names the first field a block was missing.
type ParseError struct {
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mcq block: missing or malformed %s", e.Field)
}

var (
	questionRe    = regexp.MustCompile(`^Q\d+[.)]\s*(.+)$`)
	optionRe      = regexp.MustCompile(`^([A-D])[.)]\s*(.+)$`)
	answerRe      = regexp.MustCompile(`(?i)^Answer\s*:\s*\(?([A-D])\)?(?:[.)\s]|$)`)
	explanationRe = regexp.MustCompile(`(?i)^Explanation\s*:\s*(.*)$`)
)

// ParseBlock parses one language block. Every field is required: a missing
// question, any of the four options, the answer letter or the explanation
// returns a *ParseError.
func ParseBlock(block string) (*Record, error) {
	var (
		rec         Record
		options     = make(map[intent.Letter]string, 4)
		explanation []string
		inExpl      bool
	)

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if m := explanationRe.FindStringSubmatch(line); m != nil {
			inExpl = true
			if s := strings.TrimSpace(m[1]); s != "" {
				explanation = append(explanation, s)
			}
			continue
		}
		if m := answerRe.FindStringSubmatch(line); m != nil {
			inExpl = false
			rec.Answer = intent.Letter(strings.ToUpper(m[1]))
			continue
		}
		if inExpl {
			explanation = append(explanation, line)
			continue
		}
		if m := questionRe.FindStringSubmatch(line); m != nil && rec.Question == "" {
			rec.Question = strings.TrimSpace(m[1])
			continue
		}
		if m := optionRe.FindStringSubmatch(line); m != nil {
			l := intent.Letter(m[1])
			if _, seen := options[l]; !seen {
				options[l] = strings.TrimSpace(m[2])
			}
		}
	}

	if rec.Question == "" {
		return nil, &ParseError{Field: "question"}
	}
	for _, l := range intent.Letters {
		opt, ok := options[l]
		if !ok || opt == "" {
			return nil, &ParseError{Field: "option " + string(l)}
		}
		rec.Options = append(rec.Options, opt)
	}
	if rec.Answer == "" {
		return nil, &ParseError{Field: "answer"}
	}
	rec.Explanation = strings.Join(explanation, " ")
	if rec.Explanation == "" {
		return nil, &ParseError{Field: "explanation"}
	}
	return &rec, nil
}
