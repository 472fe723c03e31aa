package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	const goroutines = 100
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for range opsPerGoroutine {
				c.AddVisited(1)
				c.AddDirsCompared(1)
				c.AddFilesFingerprinted(1)
				c.AddBytesRead(256)
				c.AddShortcutSize(1)
				c.AddShortcutInode(1)
				c.AddCacheHits(1)
				c.AddIgnored(1)
				c.AddPruned(1)
				c.AddMissing(1)
				c.AddTypeMismatches(1)
				c.AddContentDiffers(1)
				c.AddErrors(1)
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	expected := int64(goroutines * opsPerGoroutine)
	assert.Equal(t, expected, s.Visited)
	assert.Equal(t, expected, s.DirsCompared)
	assert.Equal(t, expected, s.FilesFingerprinted)
	assert.Equal(t, expected*256, s.BytesRead)
	assert.Equal(t, expected, s.ShortcutSize)
	assert.Equal(t, expected, s.ShortcutInode)
	assert.Equal(t, expected, s.CacheHits)
	assert.Equal(t, expected, s.Ignored)
	assert.Equal(t, expected, s.Pruned)
	assert.Equal(t, expected, s.Missing)
	assert.Equal(t, expected, s.TypeMismatches)
	assert.Equal(t, expected, s.ContentDiffers)
	assert.Equal(t, expected, s.Errors)
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{
		Visited:            10,
		DirsCompared:       4,
		FilesFingerprinted: 6,
		BytesRead:          4096,
		Missing:            2,
		TypeMismatches:     1,
		ContentDiffers:     3,
		Errors:             1,
	}
	expected := "visited=10 dirs=4 hashed=6 bytes=4096 missing=2 types=1 content=3 errors=1"
	assert.Equal(t, expected, s.String())
}

func TestDifferences(t *testing.T) {
	s := Snapshot{
		Missing:        2,
		TypeMismatches: 1,
		ContentDiffers: 3,
		Errors:         1,
	}
	assert.Equal(t, int64(7), s.Differences())
}

func TestNewCollector(t *testing.T) {
	c := NewCollector()
	assert.False(t, c.startTime.IsZero())
	assert.InDelta(t, 0, c.Elapsed().Seconds(), 1)
}

func TestSnapshotIncludesElapsed(t *testing.T) {
	c := NewCollector()
	time.Sleep(10 * time.Millisecond)
	s := c.Snapshot()
	assert.Greater(t, s.Elapsed, time.Duration(0))
}
