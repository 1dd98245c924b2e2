package search

// Result is one complete search outcome. IsFallback tells the caller to show
// a "showing similar results" notice.
type Result struct {
	Cards      []Card `json:"results"`
	IsFallback bool   `json:"is_fallback"`
}

// Search runs the full pipeline over an already-fetched candidate set:
// evaluate, score, rank, project to cards. Deterministic and stateless; safe
// for concurrent callers.
func Search(c Criteria, listings []*Listing) Result {
	ranked, isFallback := Rank(c, listings)
	cards := make([]Card, 0, len(ranked))
	for _, ev := range ranked {
		cards = append(cards, BuildCard(ev))
	}
	return Result{Cards: cards, IsFallback: isFallback}
}
