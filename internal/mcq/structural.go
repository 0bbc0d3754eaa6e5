package mcq

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/edubot/edubot/internal/intent"
	"github.com/edubot/edubot/internal/locale"
)

const (
	maxQuestionRunes    = 600
	maxOptionRunes      = 300
	maxExplanationRunes = 1500
)

// StructuralValidator checks that all fields are present, within length
// limits, and that the four options are distinct.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(r *Record, _ locale.Language) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	if strings.TrimSpace(r.Question) == "" {
		return fail("question is empty")
	}
	if utf8.RuneCountInString(r.Question) > maxQuestionRunes {
		return fail("question is too long")
	}
	if len(r.Options) != len(intent.Letters) {
		return fail("expected exactly 4 options")
	}
	for i, o := range r.Options {
		if strings.TrimSpace(o) == "" {
			return fail("option " + string(intent.Letters[i]) + " is empty")
		}
		if utf8.RuneCountInString(o) > maxOptionRunes {
			return fail("option " + string(intent.Letters[i]) + " is too long")
		}
	}
	normalized := lo.Map(r.Options, func(o string, _ int) string {
		return strings.ToLower(strings.TrimSpace(o))
	})
	if len(lo.Uniq(normalized)) != len(normalized) {
		return fail("options are not distinct")
	}
	if !lo.Contains(intent.Letters, r.Answer) {
		return fail("answer must be one of A, B, C, D")
	}
	if strings.TrimSpace(r.Explanation) == "" {
		return fail("explanation is empty")
	}
	if utf8.RuneCountInString(r.Explanation) > maxExplanationRunes {
		return fail("explanation is too long")
	}
	return nil
}
