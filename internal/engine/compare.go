package engine

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/bamsammich/dirdiff/internal/event"
	"github.com/bamsammich/dirdiff/internal/filter"
	"github.com/bamsammich/dirdiff/internal/stats"
)

// ErrNotADirectory reports a tree root that is not a directory.
var ErrNotADirectory = errors.New("not a directory")

// Config controls a comparison run.
type Config struct {
	// Filter decides which entries are ignored and which directory pairs
	// are pruned. Nil compares everything.
	Filter *filter.Filter

	// MaxDepth limits recursion. The roots sit at depth 0; -1 means
	// unlimited. Directory pairs past the limit are probed for any
	// difference but not descended into.
	MaxDepth int

	// Paranoid disables the size and inode shortcuts and the fingerprint
	// cache, forcing byte-for-byte content reads.
	Paranoid bool

	// Jobs is the number of directory pairs compared concurrently.
	// Values below 2 keep the comparison single-threaded.
	Jobs int

	// Events receives progress events. Nil disables emission; a full
	// channel drops events rather than stalling the comparison.
	Events chan<- event.Event

	// Stats receives counters. Nil allocates a private collector.
	Stats *stats.Collector
}

// Comparer compares two directory trees without modifying either.
type Comparer struct {
	cfg          Config
	stats        *stats.Collector
	sem          *semaphore.Weighted // spare workers beyond the caller, nil when single-threaded
	fingerprints sync.Map            // DevIno -> fingerprint
}

// NewComparer creates a comparer with the given config.
func NewComparer(cfg Config) *Comparer {
	c := &Comparer{cfg: cfg, stats: cfg.Stats}
	if c.stats == nil {
		c.stats = stats.NewCollector()
	}
	if cfg.Jobs > 1 {
		c.sem = semaphore.NewWeighted(int64(cfg.Jobs - 1))
	}
	return c
}

// ComparePair compares the entries at aPath and bPath. Directory pairs are
// compared recursively; any other pair degenerates to a single top-level
// comparison. An unreadable root is fatal and returns an error; identical
// pairs return no nodes.
func (c *Comparer) ComparePair(aPath, bPath string) ([]Node, error) {
	a, err := lstatEntry(aPath)
	if err != nil {
		return nil, fmt.Errorf("first tree: %w", err)
	}
	b, err := lstatEntry(bPath)
	if err != nil {
		return nil, fmt.Errorf("second tree: %w", err)
	}

	if a.Kind == KindDirectory && b.Kind == KindDirectory {
		return c.compareDirs(a.Path, b.Path, "", 0)
	}
	if a.Kind != b.Kind {
		c.stats.AddTypeMismatches(1)
		return []Node{{Kind: NodeTypeMismatch, Name: a.Name}}, nil
	}
	same, err := c.sameEntry(a, b)
	if err != nil {
		c.stats.AddErrors(1)
		return []Node{{Kind: NodeError, Name: a.Name, Err: err.Error()}}, nil
	}
	if same {
		return nil, nil
	}
	c.stats.AddContentDiffers(1)
	return []Node{{Kind: NodeContentDiffers, Name: a.Name}}, nil
}

// CompareTrees compares two directory trees and returns their differences
// in name order. Both roots must be directories.
func (c *Comparer) CompareTrees(aRoot, bRoot string) ([]Node, error) {
	a, err := lstatEntry(aRoot)
	if err != nil {
		return nil, fmt.Errorf("first tree: %w", err)
	}
	if a.Kind != KindDirectory {
		return nil, fmt.Errorf("first tree %s: %w", aRoot, ErrNotADirectory)
	}
	b, err := lstatEntry(bRoot)
	if err != nil {
		return nil, fmt.Errorf("second tree: %w", err)
	}
	if b.Kind != KindDirectory {
		return nil, fmt.Errorf("second tree %s: %w", bRoot, ErrNotADirectory)
	}
	return c.compareDirs(a.Path, b.Path, "", 0)
}

// compareDirs compares one directory pair and returns a node for every
// differing member, in name order. rel is the slash-separated path of the
// pair relative to the roots, "" for the roots themselves.
func (c *Comparer) compareDirs(aDir, bDir, rel string, depth int) ([]Node, error) {
	aKids, err := readChildren(aDir)
	if err != nil {
		return nil, err
	}
	bKids, err := readChildren(bDir)
	if err != nil {
		return nil, err
	}
	c.stats.AddDirsCompared(1)

	names := c.unionNames(aKids, bKids, rel)
	results := make([]*Node, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		ca, inA := aKids[name]
		cb, inB := bKids[name]

		// Subdirectory pairs are the expensive branches; spill them to
		// spare workers when any are free. Leaves stay inline.
		if c.sem != nil && bothDirs(ca, cb) && c.sem.TryAcquire(1) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer c.sem.Release(1)
				results[i] = c.compareName(name, ca, inA, cb, inB, rel, depth)
			}()
			continue
		}
		results[i] = c.compareName(name, ca, inA, cb, inB, rel, depth)
	}
	wg.Wait()

	nodes := make([]Node, 0, len(results))
	for _, n := range results {
		if n != nil {
			nodes = append(nodes, *n)
		}
	}
	return nodes, nil
}

// compareName resolves one union member to a diff node, or nil when the
// sides are identical.
func (c *Comparer) compareName(name string, ca child, inA bool, cb child, inB bool, rel string, depth int) *Node {
	childRel := joinRel(rel, name)
	c.visit(childRel)

	if inA && ca.err != nil {
		return c.errorNode(name, childRel, ca.err)
	}
	if inB && cb.err != nil {
		return c.errorNode(name, childRel, cb.err)
	}
	if inA && !inB {
		c.stats.AddMissing(1)
		return &Node{Kind: NodeMissing, Name: name, Only: SideFirst}
	}
	if !inA && inB {
		c.stats.AddMissing(1)
		return &Node{Kind: NodeMissing, Name: name, Only: SideSecond}
	}

	a, b := ca.entry, cb.entry
	if a.Kind != b.Kind {
		c.stats.AddTypeMismatches(1)
		return &Node{Kind: NodeTypeMismatch, Name: name}
	}
	if a.Kind == KindDirectory {
		return c.compareSubdirs(name, a, b, childRel, depth)
	}

	same, err := c.sameEntry(a, b)
	if err != nil {
		return c.errorNode(name, childRel, err)
	}
	if same {
		return nil
	}
	c.stats.AddContentDiffers(1)
	return &Node{Kind: NodeContentDiffers, Name: name}
}

// compareSubdirs recurses into a directory pair, unless the pair is pruned
// by pattern or depth. Pruned pairs still get a cheap difference probe so
// identical subtrees stay out of the report.
func (c *Comparer) compareSubdirs(name string, a, b *Entry, childRel string, depth int) *Node {
	prune := PruneNone
	switch {
	case c.cfg.Filter != nil && c.cfg.Filter.Pruned(childRel):
		prune = PrunePattern
	case c.cfg.MaxDepth >= 0 && depth+1 > c.cfg.MaxDepth:
		prune = PruneDepth
	}

	if prune != PruneNone {
		if !c.dirsDiffer(a.Path, b.Path, childRel) {
			return nil
		}
		c.stats.AddPruned(1)
		return &Node{
			Kind:   NodeContentDiffers,
			Name:   name,
			APath:  a.Path,
			BPath:  b.Path,
			Pruned: prune,
		}
	}

	children, err := c.compareDirs(a.Path, b.Path, childRel, depth+1)
	if err != nil {
		return c.errorNode(name, childRel, err)
	}
	if len(children) == 0 {
		return nil
	}
	return &Node{
		Kind:     NodeContentDiffers,
		Name:     name,
		APath:    a.Path,
		BPath:    b.Path,
		Children: children,
	}
}

// dirsDiffer reports whether a directory pair differs at all, without
// building nodes. It stops at the first difference found. Read failures
// count as a difference, matching the error node a full comparison of the
// pair would have produced.
func (c *Comparer) dirsDiffer(aDir, bDir, rel string) bool {
	aKids, err := readChildren(aDir)
	if err != nil {
		return true
	}
	bKids, err := readChildren(bDir)
	if err != nil {
		return true
	}
	c.stats.AddDirsCompared(1)

	for _, name := range c.unionNames(aKids, bKids, rel) {
		childRel := joinRel(rel, name)
		c.visit(childRel)

		ca, inA := aKids[name]
		cb, inB := bKids[name]
		if ca.err != nil || cb.err != nil {
			return true
		}
		if inA != inB {
			return true
		}
		a, b := ca.entry, cb.entry
		if a.Kind != b.Kind {
			return true
		}
		if a.Kind == KindDirectory {
			if c.dirsDiffer(a.Path, b.Path, childRel) {
				return true
			}
			continue
		}
		same, err := c.sameEntry(a, b)
		if err != nil || !same {
			return true
		}
	}
	return false
}

// unionNames merges the member names of both sides, drops ignored ones,
// and returns the rest sorted.
func (c *Comparer) unionNames(aKids, bKids map[string]child, rel string) []string {
	seen := make(map[string]struct{}, len(aKids)+len(bKids))
	for name := range aKids {
		seen[name] = struct{}{}
	}
	for name := range bKids {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		if c.cfg.Filter != nil && c.cfg.Filter.Ignored(joinRel(rel, name)) {
			c.stats.AddIgnored(1)
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func bothDirs(a, b child) bool {
	return a.entry != nil && b.entry != nil &&
		a.entry.Kind == KindDirectory && b.entry.Kind == KindDirectory
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

func (c *Comparer) visit(rel string) {
	c.stats.AddVisited(1)
	c.emit(event.Event{Type: event.EntryVisited, Path: rel})
}

func (c *Comparer) errorNode(name, rel string, err error) *Node {
	c.stats.AddErrors(1)
	c.emit(event.Event{Type: event.EntryError, Path: rel, Error: err})
	return &Node{Kind: NodeError, Name: name, Err: err.Error()}
}

// emit forwards an event without ever blocking the comparison.
func (c *Comparer) emit(e event.Event) {
	if c.cfg.Events == nil {
		return
	}
	select {
	case c.cfg.Events <- e:
	default:
	}
}
