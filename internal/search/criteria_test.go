package search

import (
	"reflect"
	"testing"
)

func TestParseLocationQuery(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantDistrict string
		wantCity     string
		wantTokens   []string
	}{
		{
			name:         "district and city",
			raw:          "Bonapriso, Douala",
			wantDistrict: "bonapriso",
			wantCity:     "douala",
			wantTokens:   []string{"bonapriso", "douala"},
		},
		{
			name:         "country segment dropped",
			raw:          "Bastos, Yaoundé, Cameroun",
			wantDistrict: "bastos",
			wantCity:     "yaounde",
			wantTokens:   []string{"bastos", "yaounde"},
		},
		{
			name:         "single segment has no city",
			raw:          "Yaoundé",
			wantDistrict: "yaounde",
			wantCity:     "",
			wantTokens:   []string{"yaounde"},
		},
		{
			name:         "short words skipped",
			raw:          "Rue de la Joie, Douala",
			wantDistrict: "rue de la joie",
			wantCity:     "douala",
			wantTokens:   []string{"rue", "joie", "douala"},
		},
		{
			name: "empty input",
			raw:  "   ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseLocationQuery(tt.raw)
			if q.District != tt.wantDistrict {
				t.Errorf("District = %q, want %q", q.District, tt.wantDistrict)
			}
			if q.City != tt.wantCity {
				t.Errorf("City = %q, want %q", q.City, tt.wantCity)
			}
			if !reflect.DeepEqual(q.Tokens, tt.wantTokens) {
				t.Errorf("Tokens = %v, want %v", q.Tokens, tt.wantTokens)
			}
		})
	}
}

func TestCriteriaFlags(t *testing.T) {
	if (Criteria{Location: "  "}).HasLocationFilter() {
		t.Error("blank location should not count as a filter")
	}
	if !(Criteria{Location: "Douala"}).HasLocationFilter() {
		t.Error("location filter not detected")
	}
	if !(Criteria{PropertyType: "magasin"}).IsCommercialSearch() {
		t.Error("magasin should be a commercial search")
	}
	if (Criteria{PropertyType: "villa"}).IsCommercialSearch() {
		t.Error("villa is not a commercial search")
	}
	if (Criteria{}).IsCommercialSearch() {
		t.Error("empty type must not be a commercial search")
	}
}
