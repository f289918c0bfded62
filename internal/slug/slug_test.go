package slug

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "catalog name", input: "Snake Game", want: "snake-game"},
		{name: "hyphenated word", input: "Tic-Tac-Toe AI", want: "tic-tac-toe-ai"},
		{name: "slash separator", input: "Base64 Encoder/Decoder", want: "base64-encoder-decoder"},
		{name: "punctuation", input: "Hello, World! How's it going?", want: "hello-world-hows-it-going"},
		{name: "ampersand dropped", input: "Rock & Roll", want: "rock-roll"},
		{name: "underscores", input: "quick_notes app", want: "quick-notes-app"},
		{name: "tabs and newlines", input: "hello\tworld\nagain", want: "hello-world-again"},
		{name: "markup characters", input: `<script>"x"</script>`, want: "scriptx-script"},
		{name: "quotes removed", input: `It's "fine"`, want: "its-fine"},
		{name: "leading and trailing hyphens", input: "--hello--", want: "hello"},
		{name: "repeated spaces", input: "a    b", want: "a-b"},
		{name: "unicode stripped", input: "Café Münster", want: "caf-mnster"},
		{name: "empty", input: "", want: ""},
		{name: "only symbols", input: "!@#$%^&*()", want: ""},
		{name: "digits", input: "2026 Edition", want: "2026-edition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateMaxLength(t *testing.T) {
	got := Generate(strings.Repeat("word ", 40))
	if len(got) > MaxLength {
		t.Errorf("length %d exceeds MaxLength %d", len(got), MaxLength)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("truncated slug ends with hyphen: %q", got)
	}
}

func TestGenerateAlphabet(t *testing.T) {
	inputs := []string{"Périodique — Table!", "a\x00b", "JSON {\"k\": 1}", "' OR 1=1 --"}
	for _, in := range inputs {
		for _, r := range Generate(in) {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
				t.Errorf("Generate(%q) contains %q", in, r)
			}
		}
	}
}
