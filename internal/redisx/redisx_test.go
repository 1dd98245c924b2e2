package redisx

import (
	"strings"
	"testing"
)

func TestSearchKey(t *testing.T) {
	type criteria struct {
		Location string   `json:"location"`
		Type     string   `json:"type"`
		Amens    []string `json:"amenities"`
	}

	a, err := SearchKey(criteria{Location: "Bonapriso, Douala", Type: "apartment"})
	if err != nil {
		t.Fatalf("SearchKey: %v", err)
	}
	b, _ := SearchKey(criteria{Location: "Bonapriso, Douala", Type: "apartment"})
	if a != b {
		t.Errorf("identical criteria must hash identically: %q vs %q", a, b)
	}

	c, _ := SearchKey(criteria{Location: "Akwa, Douala", Type: "apartment"})
	if a == c {
		t.Error("different criteria must not collide")
	}

	if !strings.HasPrefix(a, "search:v1:") {
		t.Errorf("key %q missing namespace prefix", a)
	}
}
