package search

import (
	"sort"
	"strings"

	"github.com/yourorg/listing-search/internal/canon"
)

const (
	resultBudget = 20
	fallbackCap  = 6

	// Best-score threshold below which a primary-less result set is flagged
	// as a fallback. Distinguishes "nothing close at all" from "decent
	// matches that missed one filter".
	fallbackScoreCeiling = 65
)

// Evaluation is one scored candidate. Lives for a single search call.
type Evaluation struct {
	Listing             *Listing
	Score               int
	MatchedPrimary      bool
	Quality             LocationQuality
	PrioritizedDistrict bool
	MatchesType         bool
	MatchesFurnishing   bool
}

// scorerFunc is one scoring mode. Selected once per search so the commercial
// and residential strategies cannot drift through scattered flag checks.
type scorerFunc func(c Criteria, l *Listing, quality LocationQuality, typeOK, furnOK bool) int

func selectScorer(c Criteria) scorerFunc {
	if c.IsCommercialSearch() {
		return func(c Criteria, l *Listing, quality LocationQuality, typeOK, _ bool) int {
			return scoreCommercial(c, l, quality, typeOK)
		}
	}
	return scoreResidential
}

// evaluate scores one listing against the criteria and records the match
// facets the ranker needs.
func evaluate(c Criteria, q ParsedLocationQuery, score scorerFunc, l *Listing) Evaluation {
	ev := Evaluation{
		Listing:           l,
		Quality:           evaluateLocationMatch(q, l),
		MatchesType:       matchesPropertyType(c, l),
		MatchesFurnishing: matchesFurnishing(c, l),
	}
	ev.MatchedPrimary = c.HasLocationFilter() &&
		ev.Quality == LocationExactAddress && ev.MatchesType && ev.MatchesFurnishing

	if q.District != "" {
		address := canon.Fold(l.AddressText)
		district := canon.Fold(l.District)
		ev.PrioritizedDistrict = strings.Contains(address, q.District) ||
			strings.Contains(district, q.District)
	}

	ev.Score = score(c, l, ev.Quality, ev.MatchesType, ev.MatchesFurnishing)
	return ev
}

func sortByScore(evs []Evaluation) {
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].Score > evs[j].Score })
}

func sortByQualityThenScore(evs []Evaluation) {
	sort.SliceStable(evs, func(i, j int) bool {
		wi, wj := evs[i].Quality.Weight(), evs[j].Quality.Weight()
		if wi != wj {
			return wi > wj
		}
		return evs[i].Score > evs[j].Score
	})
}

// A rankStrategy inspects a pool and either claims it (returning an ordered,
// trimmed result) or passes with ok=false so the next rung can try. Keeping
// the degradation ladder as an ordered list makes each rung testable on its
// own.
type rankStrategy func(evs []Evaluation, limit int) ([]Evaluation, bool)

var rankLadder = []rankStrategy{rankPrimaries, rankLocated, rankByScore}

// rankPrimaries claims the pool when it holds at least one primary match:
// primaries lead by score, non-primaries backfill by location quality.
func rankPrimaries(evs []Evaluation, limit int) ([]Evaluation, bool) {
	var primaries, rest []Evaluation
	for _, ev := range evs {
		if ev.MatchedPrimary {
			primaries = append(primaries, ev)
		} else {
			rest = append(rest, ev)
		}
	}
	if len(primaries) == 0 {
		return nil, false
	}
	sortByScore(primaries)
	if len(primaries) >= limit {
		return primaries[:limit], true
	}
	sortByQualityThenScore(rest)
	need := limit - len(primaries)
	if need > len(rest) {
		need = len(rest)
	}
	return append(primaries, rest[:need]...), true
}

// rankLocated claims the pool when any listing carries location signal,
// under the tighter fallback cap.
func rankLocated(evs []Evaluation, limit int) ([]Evaluation, bool) {
	var located []Evaluation
	for _, ev := range evs {
		if ev.Quality != LocationNone {
			located = append(located, ev)
		}
	}
	if len(located) == 0 {
		return nil, false
	}
	sortByQualityThenScore(located)
	if limit > fallbackCap {
		limit = fallbackCap
	}
	if len(located) > limit {
		located = located[:limit]
	}
	return located, true
}

// rankByScore is the last rung: best effort over the whole pool, fallback cap.
func rankByScore(evs []Evaluation, limit int) ([]Evaluation, bool) {
	all := append([]Evaluation(nil), evs...)
	sortByScore(all)
	if limit > fallbackCap {
		limit = fallbackCap
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, true
}

// rankPool runs the pool through the strategy ladder.
func rankPool(evs []Evaluation, limit int) []Evaluation {
	if limit <= 0 || len(evs) == 0 {
		return nil
	}
	for _, strategy := range rankLadder {
		if ranked, ok := strategy(evs, limit); ok {
			return ranked
		}
	}
	return nil
}

// satisfactionTier buckets a candidate for the final comparator when the
// request carries no type or furnishing preference. 0 is best.
func satisfactionTier(c Criteria, ev Evaluation) int {
	locOK := !c.HasLocationFilter() || ev.Quality != LocationNone
	switch {
	case ev.MatchesType && ev.MatchesFurnishing && ev.Quality == LocationExactAddress:
		return 0
	case ev.MatchesType && ev.MatchesFurnishing && locOK:
		return 1
	case ev.MatchesType && locOK:
		return 2
	case ev.MatchesFurnishing && locOK:
		return 3
	case locOK:
		return 4
	default:
		return 5
	}
}

// bucket assigns the hard ordering group for the final reorder. Commercial
// requests pin commercial listings on top; an explicit furnishing preference
// pins the preferred furnishing on top; everything else falls through to the
// generic satisfaction tier.
func bucket(c Criteria, ev Evaluation) int {
	l := ev.Listing
	switch {
	case c.IsCommercialSearch():
		switch {
		case l.IsCommercial():
			return 0
		case !l.IsFurnished:
			return 1
		default:
			return 2
		}
	case c.Furnishing != "":
		switch {
		case l.IsCommercial():
			return 2
		case l.IsFurnished == (c.Furnishing == FurnishingFurnished):
			return 0
		default:
			return 1
		}
	default:
		return satisfactionTier(c, ev)
	}
}

// Rank evaluates, pools, ranks and merges the candidate list.
func Rank(c Criteria, listings []*Listing) ([]Evaluation, bool) {
	q := ParseLocationQuery(c.Location)
	score := selectScorer(c)

	evs := make([]Evaluation, 0, len(listings))
	for _, l := range listings {
		evs = append(evs, evaluate(c, q, score, l))
	}

	anyPrimary := false
	best := 0
	for _, ev := range evs {
		if ev.MatchedPrimary {
			anyPrimary = true
		}
		if ev.Score > best {
			best = ev.Score
		}
	}

	var prioritized, secondary []Evaluation
	if q.District != "" {
		for _, ev := range evs {
			if ev.PrioritizedDistrict {
				prioritized = append(prioritized, ev)
			} else {
				secondary = append(secondary, ev)
			}
		}
	} else {
		secondary = evs
	}

	ranked := rankPool(prioritized, resultBudget)
	ranked = append(ranked, rankPool(secondary, resultBudget-len(ranked))...)

	sort.SliceStable(ranked, func(i, j int) bool {
		bi, bj := bucket(c, ranked[i]), bucket(c, ranked[j])
		if bi != bj {
			return bi < bj
		}
		return ranked[i].Score > ranked[j].Score
	})

	isFallback := !anyPrimary && best < fallbackScoreCeiling
	return ranked, isFallback
}
