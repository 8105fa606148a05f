package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/transit-arrivals/gtfs"
)

const (
	// Minimum bigram similarity for a stop name to be offered as a
	// suggestion when resolution fails.
	suggestionThreshold = 0.3

	maxSuggestions = 3
)

// StopNotFoundError reports a query that matched nothing, together with
// the closest stop names so a caller can offer a "did you mean".
type StopNotFoundError struct {
	Query       string
	Suggestions []string
}

func (e *StopNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no stop matches %q", e.Query)
	}
	return fmt.Sprintf("no stop matches %q (did you mean: %s)", e.Query, strings.Join(e.Suggestions, ", "))
}

// Resolve maps a free-form user query to a stop. Match attempts run from
// strictest to loosest:
//
//  1. exact rider-facing stop code
//  2. exact name, ignoring case and accents
//  3. substring of a name, ignoring case and accents; the first stop in
//     dataset order wins
//
// When all fail, the returned error is a *StopNotFoundError carrying up
// to three similar names ranked by bigram similarity.
func (idx *Index) Resolve(query string) (gtfs.Stop, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return gtfs.Stop{}, &StopNotFoundError{Query: query}
	}

	if stop, ok := idx.ByCode(trimmed); ok {
		return stop, nil
	}

	if stop, ok := idx.FindByName(trimmed); ok {
		return stop, nil
	}

	if matches := idx.FindByNameSubstring(trimmed); len(matches) > 0 {
		return matches[0], nil
	}

	return gtfs.Stop{}, &StopNotFoundError{
		Query:       query,
		Suggestions: idx.suggest(Normalize(trimmed)),
	}
}

func (idx *Index) suggest(normalizedQuery string) []string {
	type scored struct {
		name  string
		score float64
	}

	var candidates []scored
	for i, n := range idx.normalized {
		if score := diceCoefficient(normalizedQuery, n); score > suggestionThreshold {
			candidates = append(candidates, scored{idx.stops[i].Name, score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}
