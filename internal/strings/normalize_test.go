package strings

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "   ", want: ""},
		{input: "a  b\tc", want: "a b c"},
		{input: "\n a \n b \n", want: "a b"},
	}

	for _, tt := range tests {
		if got := NormalizeWhitespace(tt.input); got != tt.want {
			t.Fatalf("NormalizeWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeNewlines(t *testing.T) {
	if got := NormalizeNewlines("a\r\nb\rc\nd"); got != "a\nb\nc\nd" {
		t.Fatalf("NormalizeNewlines = %q", got)
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	if got := TrimTrailingNewlines("a\n\r\n"); got != "a" {
		t.Fatalf("TrimTrailingNewlines = %q", got)
	}
}
