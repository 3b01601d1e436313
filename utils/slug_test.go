package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"basic title", "How To Train Your Dragon", "how-to-train-your-dragon"},
		{"already lowercase", "health benefits of exercise", "health-benefits-of-exercise"},
		{"mixed case", "Latest Sports Updates", "latest-sports-updates"},

		// Whitespace handling
		{"trim whitespace", "  Dragons  ", "dragons"},
		{"multiple spaces", "slow   burn", "slow-burn"},
		{"tabs", "slow\tburn", "slow-burn"},

		// Special characters
		{"punctuation removal", "What's new in entertainment?", "whats-new-in-entertainment"},
		{"slash to dash", "sci-fi/fantasy", "sci-fi-fantasy"},
		{"unicode removal", "Go 1.25 发布!", "go-125"},

		// Dash handling
		{"multiple dashes", "slow--burn", "slow-burn"},
		{"leading and trailing dashes", "--dragons--", "dragons"},

		// Edge cases
		{"empty string", "", ""},
		{"only special chars", "!@#$%", ""},
		{"numbers allowed", "Top 10 Books", "top-10-books"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	// Two titles that normalize to the same slug must collide, since the
	// slug is the article's unique external identity.
	a := Slugify("How To Train Your Dragon")
	b := Slugify("how to train your DRAGON!")
	if a != b {
		t.Errorf("expected identical slugs, got %q and %q", a, b)
	}
}
