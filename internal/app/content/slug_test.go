package content

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces", "multiple-spaces"},
		{"Already-Hyphenated Title", "already-hyphenated-title"},
		{"Dashes -- everywhere", "dashes-everywhere"},
		{"UPPER case 123", "upper-case-123"},
		{"Symbols £$% removed", "symbols-removed"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	// Feeding a derived slug back in as a title must be a fixed point,
	// otherwise repeated requests could resolve differently.
	titles := []string{
		"Hello World",
		"Grand Opening: Meet the Team!",
		"2024 Year In Review",
		"café & croissants",
	}
	for _, title := range titles {
		once := Slugify(title)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}
