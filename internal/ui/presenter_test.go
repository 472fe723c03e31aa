package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bamsammich/dirdiff/internal/event"
)

func TestNewPresenter(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want Presenter
	}{
		{name: "tty gets spinner", cfg: Config{Writer: io.Discard, Width: 80, IsTTY: true}, want: &spinnerPresenter{}},
		{name: "pipe stays quiet", cfg: Config{Writer: io.Discard, Width: 80, IsTTY: false}, want: &quietPresenter{}},
		{name: "quiet overrides tty", cfg: Config{Writer: io.Discard, Width: 80, IsTTY: true, Quiet: true}, want: &quietPresenter{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.want, NewPresenter(tt.cfg))
		})
	}
}

func TestQuietPresenter_DrainsUntilClose(t *testing.T) {
	events := make(chan event.Event, 4)
	events <- event.Event{Type: event.EntryVisited, Path: "a"}
	events <- event.Event{Type: event.EntryError, Path: "b"}
	close(events)

	p := &quietPresenter{}
	p.Run(events) // returns once the channel closes
}

func TestSpinner_DrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	p := newSpinner(&buf, 80)

	events := make(chan event.Event, 4)
	events <- event.Event{Type: event.EntryVisited, Path: "a/b.txt"}
	close(events)
	p.Run(events)

	out := buf.String()
	assert.Contains(t, out, "| a/b.txt")
	assert.True(t, strings.HasSuffix(out, ansiClearLine), "status line is erased at the end")
}

func TestSpinner_ThrottlesRedraws(t *testing.T) {
	var buf bytes.Buffer
	p := newSpinner(&buf, 80)

	events := make(chan event.Event, 4)
	events <- event.Event{Type: event.EntryVisited, Path: "first"}
	events <- event.Event{Type: event.EntryVisited, Path: "second"}
	close(events)
	p.Run(events)

	// Both events land well inside the redraw interval, so only the first
	// is drawn.
	assert.Contains(t, buf.String(), "first")
	assert.NotContains(t, buf.String(), "second")
}

func TestSpinner_IgnoresErrorEvents(t *testing.T) {
	var buf bytes.Buffer
	p := newSpinner(&buf, 80)

	events := make(chan event.Event, 4)
	events <- event.Event{Type: event.EntryError, Path: "bad"}
	close(events)
	p.Run(events)

	assert.NotContains(t, buf.String(), "bad")
}

func TestSpinner_FramesRotate(t *testing.T) {
	var buf bytes.Buffer
	p := newSpinner(&buf, 80)

	for i := range 5 {
		p.draw(fmt.Sprintf("p%d", i))
	}

	out := buf.String()
	for i, frame := range []string{"|", "/", "-", "\\", "|"} {
		assert.Contains(t, out, fmt.Sprintf(" %s p%d", frame, i))
	}
}

func TestSpinner_TruncatesLongPaths(t *testing.T) {
	var buf bytes.Buffer
	p := newSpinner(&buf, 0)

	long := strings.Repeat("abcdefghij", 10)
	p.draw(long)

	out := buf.String()
	assert.NotContains(t, out, long)
	assert.Contains(t, out, "..."+long[len(long)-69:], "keeps the last 69 characters after the ellipsis")
}

func TestSpinner_ShortPathsUntouched(t *testing.T) {
	var buf bytes.Buffer
	p := newSpinner(&buf, 0)

	p.draw("short/path.txt")
	assert.Contains(t, buf.String(), "short/path.txt")
	assert.NotContains(t, buf.String(), "...")
}

func TestNewSpinner_NarrowTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := newSpinner(&buf, 20)

	long := strings.Repeat("x", 30)
	p.draw(long)

	// 20 columns leave 14 for the path: an ellipsis plus the last 11.
	assert.Contains(t, buf.String(), "..."+long[len(long)-11:])
	assert.NotContains(t, buf.String(), long)
}
