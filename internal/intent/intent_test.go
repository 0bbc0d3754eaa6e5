package intent

import (
	"testing"

	"github.com/edubot/edubot/internal/locale"
)

func TestIsStopRequest_EveryStopWord(t *testing.T) {
	for lang, words := range stopKeywords {
		for _, w := range words {
			if !IsStopRequest(w, lang) {
				t.Errorf("IsStopRequest(%q, %s) = false, want true", w, lang)
			}
		}
		if IsStopRequest("I like tea", lang) {
			t.Errorf("IsStopRequest(%q, %s) = true, want false", "I like tea", lang)
		}
	}
}

func TestIsStopRequest_TrimsAndLowercases(t *testing.T) {
	if !IsStopRequest("  STOP  ", locale.English) {
		t.Fatal("expected padded upper-case STOP to match")
	}
	// English stop words work in every language.
	if !IsStopRequest("stop", locale.Sinhala) {
		t.Fatal("expected English stop word to match in Sinhala")
	}
}

func TestIsMCQRequest(t *testing.T) {
	tests := []struct {
		text string
		lang locale.Language
		want bool
	}{
		{"mcq", locale.English, true},
		{"Let's practice MCQs", locale.English, true},
		{"Give me a QUIZ please", locale.English, true},
		{"MCQ අභ්‍යාස කරමු", locale.Sinhala, true},
		{"MCQ பயிற்சி செய்வோம்", locale.Tamil, true},
		{"What is democracy?", locale.English, false},
		{"Give me a random question", locale.English, false},
		{"", locale.Tamil, false},
	}
	for _, tt := range tests {
		if got := IsMCQRequest(tt.text, tt.lang); got != tt.want {
			t.Errorf("IsMCQRequest(%q, %s) = %v, want %v", tt.text, tt.lang, got, tt.want)
		}
	}
}

func TestIsExplanationRequest(t *testing.T) {
	tests := []struct {
		text string
		lang locale.Language
		want bool
	}{
		{"Can you explain?", locale.English, true},
		{"I don't know", locale.English, true},
		{"I don\u2019t know", locale.English, true},
		{"I don\u2019t understand this", locale.Sinhala, true},
		{"මම දන්නේ නැහැ", locale.Sinhala, true},
		{"எனக்குத் தெரியாது", locale.Tamil, true},
		{"The answer is B", locale.English, false},
	}
	for _, tt := range tests {
		if got := IsExplanationRequest(tt.text, tt.lang); got != tt.want {
			t.Errorf("IsExplanationRequest(%q, %s) = %v, want %v", tt.text, tt.lang, got, tt.want)
		}
	}
}

func TestDetectQuickAction(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		lang      locale.Language
		wantKind  Kind
		wantTopic string // empty means nil
	}{
		{"english learn", "I want to learn a topic", locale.English, KindLearn, ""},
		{"english learn about", "I want to learn about the separation of powers.", locale.English, KindLearn, "the separation of powers"},
		{"sinhala learn", "මට මාතෘකාවක් ඉගෙන ගන්න ඕනේ", locale.Sinhala, KindLearn, ""},
		{"sinhala learn topic", "මට ප්‍රජාතන්ත්‍රවාදය ගැන ඉගෙන ගන්න ඕනේ", locale.Sinhala, KindLearn, "ප්‍රජාතන්ත්‍රවාදය"},
		{"tamil learn topic", "ஜனநாயகம் பற்றி கற்க விரும்புகிறேன்", locale.Tamil, KindLearn, "ஜனநாயகம்"},
		{"english random", "Give me a random question", locale.English, KindRandom, ""},
		{"sinhala random", "මට අහම්බෙන් ප්‍රශ්නයක් දෙන්න", locale.Sinhala, KindRandom, ""},
		{"tamil random", "எனக்கு ஒரு சீரற்ற கேள்வி கொடுங்கள்", locale.Tamil, KindRandom, ""},
		{"english help", "How can you help me?", locale.English, KindHelp, ""},
		{"sinhala help", "ඔබ මට කොහොමද උදව් කරන්න පුළුවන්?", locale.Sinhala, KindHelp, ""},
		{"tamil help", "நீங்கள் எனக்கு எவ்வாறு உதவ முடியும்?", locale.Tamil, KindHelp, ""},
		{"none", "What is a constitution?", locale.English, KindNone, ""},
		{"empty", "   ", locale.English, KindNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectQuickAction(tt.text, tt.lang)
			if got.Kind != tt.wantKind {
				t.Fatalf("kind = %q, want %q", got.Kind, tt.wantKind)
			}
			switch {
			case tt.wantTopic == "" && got.Topic != nil:
				t.Errorf("topic = %q, want nil", *got.Topic)
			case tt.wantTopic != "" && got.Topic == nil:
				t.Errorf("topic = nil, want %q", tt.wantTopic)
			case tt.wantTopic != "" && *got.Topic != tt.wantTopic:
				t.Errorf("topic = %q, want %q", *got.Topic, tt.wantTopic)
			}
		})
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in     string
		want   Letter
		wantOK bool
	}{
		{"A", "A", true},
		{" b ", "B", true},
		{"c.", "C", true},
		{"D)", "D", true},
		{"E", "", false},
		{"AB", "", false},
		{"", "", false},
		{"answer is a", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAnswer(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseAnswer(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
