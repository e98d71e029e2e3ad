package textutil

import (
	"math"
	"testing"
)

func TestStringDistanceIdentical(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"plain", "Abbey Road", "Abbey Road"},
		{"case", "abbey road", "ABBEY ROAD"},
		{"punctuation", "OK Computer", "O.K. Computer"},
		{"diacritics", "Amelie", "Amélie"},
		{"ampersand", "Simon & Garfunkel", "Simon and Garfunkel"},
		{"article rotation", "Beatles, The", "The Beatles"},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringDistance(tt.a, tt.b); got != 0 {
				t.Errorf("StringDistance(%q, %q) = %v, want 0", tt.a, tt.b, got)
			}
		})
	}
}

func TestStringDistanceDisjoint(t *testing.T) {
	if got := StringDistance("", "The White Album"); got != 1 {
		t.Errorf("StringDistance(empty, non-empty) = %v, want 1", got)
	}
}

func TestStringDistanceBounds(t *testing.T) {
	pairs := [][2]string{
		{"Help!", "Helter Skelter"},
		{"In Utero", "In Utero (20th Anniversary Remaster)"},
		{"Live at Leeds", "Live at Wembley"},
		{"Something", "Something Else"},
	}
	for _, pair := range pairs {
		got := StringDistance(pair[0], pair[1])
		if got < 0 || got > 1.3 {
			t.Errorf("StringDistance(%q, %q) = %v, out of expected range", pair[0], pair[1], got)
		}
	}
}

func TestStringDistanceSymmetric(t *testing.T) {
	ab := StringDistance("Nevermind", "Nevertheless")
	ba := StringDistance("Nevertheless", "Nevermind")
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("StringDistance not symmetric: %v vs %v", ab, ba)
	}
}

func TestStringDistanceDiscountsNoise(t *testing.T) {
	// A bracketed qualifier should cost far less than an equally long
	// difference in the core title.
	noisy := StringDistance("In Utero", "In Utero (Deluxe Edition)")
	core := StringDistance("In Utero", "In Utero Deluxe Edition")
	if noisy >= core {
		t.Errorf("bracketed qualifier %v not cheaper than core difference %v", noisy, core)
	}

	feat := StringDistance("One More Time", "One More Time feat. Romanthony")
	if feat >= 0.2 {
		t.Errorf("feat credit distance = %v, want < 0.2", feat)
	}
}

func TestStringDistanceOrdersCandidates(t *testing.T) {
	// Closer titles must score strictly lower.
	near := StringDistance("Abbey Road", "Abby Road")
	far := StringDistance("Abbey Road", "Let It Be")
	if near >= far {
		t.Errorf("near %v should be smaller than far %v", near, far)
	}
}

func TestStripBrackets(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"parens", "Greatest Hits (Deluxe Edition)", "Greatest Hits"},
		{"brackets", "Homework [Remastered]", "Homework"},
		{"no brackets", "Discovery", "Discovery"},
		{"leading bracket", "(What's the Story) Morning Glory?", "(What's the Story) Morning Glory?"},
		{"whitespace", "  Rumours  ", "Rumours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripBrackets(tt.input); got != tt.want {
				t.Errorf("StripBrackets(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
