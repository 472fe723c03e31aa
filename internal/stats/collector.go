package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks comparison statistics using lock-free atomic counters.
// It is shared between the comparison workers and the presenter.
type Collector struct {
	visited            atomic.Int64
	dirsCompared       atomic.Int64
	filesFingerprinted atomic.Int64
	bytesRead          atomic.Int64
	shortcutSize       atomic.Int64
	shortcutInode      atomic.Int64
	cacheHits          atomic.Int64
	ignored            atomic.Int64
	pruned             atomic.Int64
	missing            atomic.Int64
	typeMismatches     atomic.Int64
	contentDiffers     atomic.Int64
	errors             atomic.Int64
	startTime          time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	Visited            int64 // entries considered, including probe passes
	DirsCompared       int64
	FilesFingerprinted int64
	BytesRead          int64
	ShortcutSize       int64 // pairs settled by differing sizes
	ShortcutInode      int64 // pairs settled by shared dev+ino
	CacheHits          int64 // fingerprints reused from the inode cache
	Ignored            int64
	Pruned             int64
	Missing            int64
	TypeMismatches     int64
	ContentDiffers     int64 // leaf entries whose contents differ
	Errors             int64
	Elapsed            time.Duration
}

func (c *Collector) AddVisited(n int64)            { c.visited.Add(n) }
func (c *Collector) AddDirsCompared(n int64)       { c.dirsCompared.Add(n) }
func (c *Collector) AddFilesFingerprinted(n int64) { c.filesFingerprinted.Add(n) }
func (c *Collector) AddBytesRead(n int64)          { c.bytesRead.Add(n) }
func (c *Collector) AddShortcutSize(n int64)       { c.shortcutSize.Add(n) }
func (c *Collector) AddShortcutInode(n int64)      { c.shortcutInode.Add(n) }
func (c *Collector) AddCacheHits(n int64)          { c.cacheHits.Add(n) }
func (c *Collector) AddIgnored(n int64)            { c.ignored.Add(n) }
func (c *Collector) AddPruned(n int64)             { c.pruned.Add(n) }
func (c *Collector) AddMissing(n int64)            { c.missing.Add(n) }
func (c *Collector) AddTypeMismatches(n int64)     { c.typeMismatches.Add(n) }
func (c *Collector) AddContentDiffers(n int64)     { c.contentDiffers.Add(n) }
func (c *Collector) AddErrors(n int64)             { c.errors.Add(n) }

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Visited:            c.visited.Load(),
		DirsCompared:       c.dirsCompared.Load(),
		FilesFingerprinted: c.filesFingerprinted.Load(),
		BytesRead:          c.bytesRead.Load(),
		ShortcutSize:       c.shortcutSize.Load(),
		ShortcutInode:      c.shortcutInode.Load(),
		CacheHits:          c.cacheHits.Load(),
		Ignored:            c.ignored.Load(),
		Pruned:             c.pruned.Load(),
		Missing:            c.missing.Load(),
		TypeMismatches:     c.typeMismatches.Load(),
		ContentDiffers:     c.contentDiffers.Load(),
		Errors:             c.errors.Load(),
		Elapsed:            c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// Differences totals the entries reported as differing in any way.
func (s Snapshot) Differences() int64 {
	return s.Missing + s.TypeMismatches + s.ContentDiffers + s.Errors
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"visited=%d dirs=%d hashed=%d bytes=%d missing=%d types=%d content=%d errors=%d",
		s.Visited, s.DirsCompared, s.FilesFingerprinted, s.BytesRead,
		s.Missing, s.TypeMismatches, s.ContentDiffers, s.Errors,
	)
}
