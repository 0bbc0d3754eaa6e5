package mcq

import (
	"strings"
	"testing"

	"github.com/edubot/edubot/internal/locale"
)

func TestFormatQuestion(t *testing.T) {
	got := FormatQuestion(validRecord(), locale.English, 3)
	want := "Question 3:\nWhich body holds legislative power?\n\n" +
		"A. The President\nB. Parliament\nC. The Supreme Court\nD. The Cabinet\n\n" +
		"Please type A, B, C, or D:"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatQuestion_Localized(t *testing.T) {
	got := FormatQuestion(validRecord(), locale.Sinhala, 1)
	if !strings.HasSuffix(got, locale.T(locale.Sinhala, locale.KeyMCQPrompt)) {
		t.Errorf("Sinhala question does not end with the Sinhala prompt:\n%s", got)
	}
}

func TestFormatFeedback(t *testing.T) {
	r := validRecord()
	correct := FormatFeedback(r, "B", locale.English)
	if correct != "✅ Correct! Article 4(a)." {
		t.Errorf("correct = %q", correct)
	}
	wrong := FormatFeedback(r, "A", locale.English)
	if wrong != "❌ Incorrect. The correct answer is B (Parliament). Article 4(a)." {
		t.Errorf("wrong = %q", wrong)
	}
}
