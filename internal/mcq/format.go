package mcq

import (
	"fmt"
	"strings"

	"github.com/edubot/edubot/internal/intent"
	"github.com/edubot/edubot/internal/locale"
)

// FormatQuestion renders r as the chat reply for question number n. The
// reply always ends with the localized answer prompt.
func FormatQuestion(r *Record, lang locale.Language, n int) string {
	var b strings.Builder
	b.WriteString(locale.T(lang, locale.KeyMCQQuestion, n))
	b.WriteString("\n")
	b.WriteString(r.Question)
	b.WriteString("\n\n")
	for i, l := range intent.Letters {
		if i < len(r.Options) {
			fmt.Fprintf(&b, "%s. %s\n", l, r.Options[i])
		}
	}
	b.WriteString("\n")
	b.WriteString(locale.T(lang, locale.KeyMCQPrompt))
	return b.String()
}

// FormatFeedback renders the verdict on answer, followed by the explanation.
func FormatFeedback(r *Record, answer intent.Letter, lang locale.Language) string {
	if r.IsCorrect(answer) {
		return locale.T(lang, locale.KeyMCQCorrect, r.Explanation)
	}
	correct := string(r.Answer)
	if opt := r.Option(r.Answer); opt != "" {
		correct = fmt.Sprintf("%s (%s)", r.Answer, opt)
	}
	return locale.T(lang, locale.KeyMCQIncorrect, correct, r.Explanation)
}

// FormatScore renders the running score.
func FormatScore(score, total int, lang locale.Language) string {
	return locale.T(lang, locale.KeyMCQScore, score, total)
}
