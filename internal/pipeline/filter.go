package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/tally/internal/model"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterByTime returns expenses whose date falls within [since, until).
// A zero bound is open.
func FilterByTime(l model.Ledger, since, until time.Time) model.Ledger {
	if since.IsZero() && until.IsZero() {
		return l
	}

	var result model.Ledger
	for _, e := range l {
		if !since.IsZero() && e.Date.Before(since) {
			continue
		}
		if !until.IsZero() && !e.Date.Before(until) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// FilterByCategory returns expenses whose category fuzzy-matches query,
// ignoring case and diacritics ("fd" matches "Food").
func FilterByCategory(l model.Ledger, query string) model.Ledger {
	query = strings.TrimSpace(query)
	if query == "" {
		return l
	}

	var result model.Ledger
	for _, e := range l {
		if fuzzy.MatchNormalizedFold(query, e.Category) {
			result = append(result, e)
		}
	}
	return result
}

// Categories returns the distinct categories in the ledger, sorted.
func Categories(l model.Ledger) []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, e := range l {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		cats = append(cats, e.Category)
	}
	sort.Strings(cats)
	return cats
}

// SimilarCategories returns existing categories resembling input, closest first.
// Returns nil when input already is a known category.
func SimilarCategories(l model.Ledger, input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	cats := Categories(l)
	for _, c := range cats {
		if c == input {
			return nil
		}
	}

	var out []string
	for _, c := range cats {
		if strings.EqualFold(c, input) {
			out = append(out, c)
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(input, cats)
	sort.Sort(ranks)
	for _, r := range ranks {
		if !strings.EqualFold(r.Target, input) {
			out = append(out, r.Target)
		}
	}
	return out
}
