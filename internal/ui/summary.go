package ui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bamsammich/dirdiff/internal/stats"
)

// Summary builds the final statistics line from a snapshot.
// Format: compared 48,917 entries in 3.1s: 14 differences (...)
func Summary(snap stats.Snapshot) string {
	shortcuts := snap.ShortcutSize + snap.ShortcutInode + snap.CacheHits
	return fmt.Sprintf(
		"compared %s entries in %s: %s differences (%s missing, %s type, %s content, %s unreadable), hashed %s files (%s read), %s settled by shortcut",
		humanize.Comma(snap.Visited),
		snap.Elapsed.Round(time.Millisecond),
		humanize.Comma(snap.Differences()),
		humanize.Comma(snap.Missing),
		humanize.Comma(snap.TypeMismatches),
		humanize.Comma(snap.ContentDiffers),
		humanize.Comma(snap.Errors),
		humanize.Comma(snap.FilesFingerprinted),
		humanize.Bytes(uint64(snap.BytesRead)), //nolint:gosec // G115: counters never go negative
		humanize.Comma(shortcuts),
	)
}
