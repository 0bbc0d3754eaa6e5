// Package mcq obtains multiple-choice questions from a language model. The
// model is asked for a tri-lingual bundle; the block for the requested
// language is extracted, parsed into a Record and validated.
package mcq

import "github.com/edubot/edubot/internal/intent"

// Record is one parsed multiple-choice question.
type Record struct {
	// Question is the text after the "Q<n>." marker.
	Question string `json:"question"`

	// Options holds the text of options A to D, without the letter label.
	Options []string `json:"options"`

	// Answer is the correct option letter.
	Answer intent.Letter `json:"answer"`

	// Explanation is shown after the learner answers.
	Explanation string `json:"explanation"`
}

// Option returns the text of the option labelled l.
func (r *Record) Option(l intent.Letter) string {
	for i, letter := range intent.Letters {
		if letter == l && i < len(r.Options) {
			return r.Options[i]
		}
	}
	return ""
}

// IsCorrect reports whether l is the correct answer.
func (r *Record) IsCorrect(l intent.Letter) bool {
	return r.Answer == l
}
