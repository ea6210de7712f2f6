package sanitizer

import (
	"slices"
	"testing"
)

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normalized", "atomic", "atomic"},
		{"mixed case", "Sequential", "sequential"},
		{"padded", "  MONGO \n", "mongo"},
		{"empty", "", ""},
		{"only whitespace", " \t ", ""},
		{"inner whitespace collapsed", "at  omic", "at omic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeKeyword(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeKeyword(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeKeyword(got); again != got {
				t.Errorf("NormalizeKeyword is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "broker-1:9092", []string{"broker-1:9092"}},
		{"trim and drop empty", " broker-1:9092 , ,broker-2:9092", []string{"broker-1:9092", "broker-2:9092"}},
		{"duplicates keep first", "b:1,a:1,b:1", []string{"b:1", "a:1"}},
		{"case is kept", "Broker:1", []string{"Broker:1"}},
		{"empty", "", []string{}},
		{"only separators", " , ,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeList(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("NormalizeList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeStringSlice(t *testing.T) {
	got := NormalizeStringSlice([]string{"A", "a", " b ", ""}, NormalizeKeyword)
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("NormalizeStringSlice() = %v", got)
	}
	if got := NormalizeStringSlice(nil, NormalizeKeyword); got == nil || len(got) != 0 {
		t.Errorf("nil input should give an empty slice, got %#v", got)
	}
}

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic trim",
			input: "  hello  ",
			want:  "hello",
		},
		{
			name:  "multiple spaces",
			input: "hello    world",
			want:  "hello world",
		},
		{
			name:  "tabs and newlines",
			input: "hello\t\nworld",
			want:  "hello world",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
