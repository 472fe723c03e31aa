package filter

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidPattern reports a glob that cannot be parsed.
var ErrInvalidPattern = errors.New("invalid pattern")

// DefaultPrunePatterns keep comparison out of version control metadata at
// any depth.
var DefaultPrunePatterns = []string{".git", "**/.git"}

// Filter holds the ignore and prune patterns for one comparison run.
//
// Patterns match slash-separated paths relative to the tree roots, with
// the usual glob rules: * and ? never cross a separator, ** spans any
// number of segments. Ignored entries are skipped outright on both sides.
// Pruned directories are still checked for differences but never descended
// into.
type Filter struct {
	ignore []string
	prune  []string
}

// New validates every pattern up front and builds a filter. defaultPrune
// appends DefaultPrunePatterns to the prune set.
func New(ignore, prune []string, defaultPrune bool) (*Filter, error) {
	for _, p := range slices.Concat(ignore, prune) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}
	f := &Filter{
		ignore: slices.Clone(ignore),
		prune:  slices.Clone(prune),
	}
	if defaultPrune {
		f.prune = append(f.prune, DefaultPrunePatterns...)
	}
	return f, nil
}

// Ignored reports whether the entry at rel is excluded from comparison.
func (f *Filter) Ignored(rel string) bool {
	return matchAny(f.ignore, rel)
}

// Pruned reports whether the directory at rel should not be descended into.
func (f *Filter) Pruned(rel string) bool {
	return matchAny(f.prune, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		// Patterns were validated in New, so Match cannot fail here.
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
