package locale

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"english", English},
		{"sinhala", Sinhala},
		{"tamil", Tamil},
		{" tamil ", Tamil},
		{"Tamil", English},
		{"SINHALA", English},
		{"si", English},
		{"ta", English},
		{"", English},
		{"french", English},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestName(t *testing.T) {
	if English.Name() != "English" || Sinhala.Name() != "Sinhala" || Tamil.Name() != "Tamil" {
		t.Fatalf("unexpected names: %s %s %s", English.Name(), Sinhala.Name(), Tamil.Name())
	}
	if Language("klingon").Name() != "English" {
		t.Fatalf("unknown language should be named English")
	}
}

func TestT_FallsBackToEnglish(t *testing.T) {
	// Validation text only exists in the English table.
	got := T(Sinhala, KeyValidationFailed)
	want := templates[English][KeyValidationFailed]
	if got != want {
		t.Fatalf("T(sinhala, validation) = %q, want English %q", got, want)
	}

	if got := T(Language("klingon"), KeyMCQPrompt); got != "Please type A, B, C, or D:" {
		t.Fatalf("unknown locale: got %q", got)
	}
}

func TestT_UnknownKey(t *testing.T) {
	if got := T(English, Key("nope")); got != "nope" {
		t.Fatalf("got %q, want key echoed", got)
	}
}

func TestT_Formats(t *testing.T) {
	if got := T(English, KeyMCQScore, 2, 3); got != "Score: 2/3" {
		t.Fatalf("got %q", got)
	}
}

func TestEveryKeyHasEnglish(t *testing.T) {
	for lang, table := range templates {
		for key := range table {
			if _, ok := templates[English][key]; !ok {
				t.Errorf("%s key %q has no English entry", lang, key)
			}
		}
	}
}
