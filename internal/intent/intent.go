// Package intent classifies a user's chat turn. Every function is total:
// unmatched or empty input resolves to "no intent" and nothing panics.
package intent

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/edubot/edubot/internal/locale"
)

// Kind is a quick-action kind.
type Kind string

const (
	KindNone   Kind = "none"
	KindLearn  Kind = "learn"
	KindRandom Kind = "random"
	KindHelp   Kind = "help"
)

// quickActionOrder is the precedence used when a phrase matches several kinds.
var quickActionOrder = []Kind{KindLearn, KindRandom, KindHelp}

// QuickAction is the result of DetectQuickAction. Topic is nil unless a
// learn phrase carried an extractable subject.
type QuickAction struct {
	Kind  Kind
	Topic *string
}

// IsMCQRequest reports whether text asks for quiz practice.
func IsMCQRequest(text string, lang locale.Language) bool {
	return containsAny(normalize(text), keywordsFor(mcqKeywords, lang))
}

// IsStopRequest reports whether text asks to stop the current quiz.
func IsStopRequest(text string, lang locale.Language) bool {
	return containsAny(normalize(text), keywordsFor(stopKeywords, lang))
}

// IsExplanationRequest reports whether text signals confusion or asks for
// the answer to a previous question.
func IsExplanationRequest(text string, lang locale.Language) bool {
	return containsAny(normalize(text), keywordsFor(explanationKeywords, lang))
}

// DetectQuickAction matches the fixed quick-action phrases for lang.
func DetectQuickAction(text string, lang locale.Language) QuickAction {
	norm := normalize(text)
	if norm == "" {
		return QuickAction{Kind: KindNone}
	}
	for _, kind := range quickActionOrder {
		if !containsAny(norm, keywordsFor(quickActionKeywords[kind], lang)) {
			continue
		}
		qa := QuickAction{Kind: kind}
		if kind == KindLearn {
			qa.Topic = extractTopic(strings.TrimSpace(text))
		}
		return qa
	}
	return QuickAction{Kind: KindNone}
}

var (
	englishTopic = regexp.MustCompile(`(?i)\babout\s+(.+?)[\s.?!]*$`)
	sinhalaTopic = regexp.MustCompile(`(\S+)\s+ගැන`)
	tamilTopic   = regexp.MustCompile(`(\S+)\s+பற்றி`)
)

// extractTopic tries "about X" first, then the Sinhala and Tamil
// postpositions ("X ගැන", "X பற்றி").
func extractTopic(text string) *string {
	for _, re := range []*regexp.Regexp{englishTopic, sinhalaTopic, tamilTopic} {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		topic := strings.TrimSpace(m[1])
		if topic != "" {
			return &topic
		}
	}
	return nil
}

// Letter is an MCQ option label.
type Letter string

// Letters are the valid option labels in display order.
var Letters = []Letter{"A", "B", "C", "D"}

// ParseAnswer interprets text as an option letter. Surrounding whitespace,
// case and a trailing "." or ")" are ignored.
func ParseAnswer(text string) (Letter, bool) {
	s := strings.ToUpper(strings.TrimSpace(text))
	s = strings.TrimRight(s, ".)")
	l := Letter(s)
	if lo.Contains(Letters, l) {
		return l, true
	}
	return "", false
}

// quoteFolder maps typographic apostrophes from mobile keyboards to ASCII.
var quoteFolder = strings.NewReplacer("\u2019", "'", "\u2018", "'", "\u02bc", "'")

func normalize(text string) string {
	return quoteFolder.Replace(strings.ToLower(strings.TrimSpace(text)))
}

func keywordsFor(table map[locale.Language][]string, lang locale.Language) []string {
	if lang == locale.English {
		return table[locale.English]
	}
	return append(append([]string{}, table[lang]...), table[locale.English]...)
}

func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	return lo.SomeBy(keywords, func(k string) bool {
		return strings.Contains(text, k)
	})
}
