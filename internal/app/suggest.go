package app

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/gobwas/glob"
)

// maxSuggestDistance bounds how far a typo can be from a bookmark name
// before we stop suggesting it.
const maxSuggestDistance = 3

// closestName returns the registered name nearest to name by edit distance.
func closestName(name string, names []string) (string, bool) {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, n := range names {
		d := levenshtein.ComputeDistance(name, n)
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, best != ""
}

// filterNames keeps the names matching a glob pattern. An empty pattern
// matches everything.
func filterNames(pattern string, names []string) ([]string, error) {
	if pattern == "" {
		return names, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	var out []string
	for _, n := range names {
		if g.Match(n) {
			out = append(out, n)
		}
	}
	return out, nil
}
