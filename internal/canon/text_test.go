package canon

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"accents stripped", "Yaoundé", "yaounde"},
		{"case and trim", "  DOUALA ", "douala"},
		{"mixed diacritics", "Séjour Meublé", "sejour meuble"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFoldBare(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation to spaces", "APPART. meublé", "appart meuble"},
		{"collapses runs", "espace   commercial!!", "espace commercial"},
		{"already clean", "villa", "villa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FoldBare(tt.in); got != tt.want {
				t.Errorf("FoldBare(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompact(t *testing.T) {
	a := Compact("Rue Tokoto, Bonapriso, Douala")
	b := Compact("rue tokoto bonapriso douala")
	if a != b {
		t.Errorf("Compact forms differ: %q vs %q", a, b)
	}
	if a != "ruetokotobonaprisodouala" {
		t.Errorf("Compact = %q", a)
	}
}
