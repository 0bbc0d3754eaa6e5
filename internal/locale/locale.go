// Package locale holds every user-visible string of the assistant in one
// Language -> key -> template table.
package locale

import (
	"fmt"
	"strings"
)

// Language is the reply language selected by the client.
type Language string

const (
	English Language = "english"
	Sinhala Language = "sinhala"
	Tamil   Language = "tamil"
)

// All lists the supported languages in prompt order.
var All = []Language{English, Sinhala, Tamil}

// Parse maps a wire value to a Language. Only the exact values "sinhala"
// and "tamil" select a localized language; anything else, including
// language codes and other casings, selects English.
func Parse(s string) Language {
	switch strings.TrimSpace(s) {
	case string(Sinhala):
		return Sinhala
	case string(Tamil):
		return Tamil
	default:
		return English
	}
}

// Name returns the display name used in MCQ block headers.
func (l Language) Name() string {
	switch l {
	case Sinhala:
		return "Sinhala"
	case Tamil:
		return "Tamil"
	default:
		return "English"
	}
}

func (l Language) String() string { return string(l) }

// Key identifies a template in the string table.
type Key string

const (
	KeyMCQGoodbye       Key = "mcq.goodbye"
	KeyMCQFailed        Key = "mcq.failed"
	KeyMCQPrompt        Key = "mcq.prompt"
	KeyMCQQuestion      Key = "mcq.question"
	KeyMCQCorrect       Key = "mcq.correct"
	KeyMCQIncorrect     Key = "mcq.incorrect"
	KeyMCQScore         Key = "mcq.score"
	KeyMCQNext          Key = "mcq.next"
	KeyHelp             Key = "quick.help"
	KeyServiceError     Key = "error.service"
	KeyServiceTimeout   Key = "error.timeout"
	KeyServiceBusy      Key = "error.busy"
	KeyValidationFailed Key = "error.validation"
)

// T looks up key for lang and formats it with args. Unknown languages and
// keys missing from a language fall back to the English entry; a key missing
// everywhere returns the key itself.
func T(lang Language, key Key, args ...any) string {
	tmpl, ok := lookup(lang, key)
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

func lookup(lang Language, key Key) (string, bool) {
	if table, ok := templates[lang]; ok {
		if s, ok := table[key]; ok {
			return s, true
		}
	}
	s, ok := templates[English][key]
	return s, ok
}
