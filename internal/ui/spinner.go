package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/dirdiff/internal/event"
)

// ansiClearLine erases the current line and returns the cursor to column 1.
const ansiClearLine = "\033[2K\033[G"

var spinnerFrames = [...]string{"|", "/", "-", "\\"}

const (
	spinnerPathWidth   = 72
	spinnerMinInterval = 50 * time.Millisecond // don't redraw faster than this
)

// spinnerPresenter redraws a single status line in place: a rotating
// indicator next to the path currently being compared. The line is erased
// once the event stream ends so the listing starts on a clean row.
type spinnerPresenter struct {
	w         io.Writer
	pathWidth int
	step      int
	lastDraw  time.Time
}

func newSpinner(w io.Writer, termWidth int) *spinnerPresenter {
	pathWidth := spinnerPathWidth
	if termWidth > 0 && termWidth-6 < pathWidth {
		pathWidth = termWidth - 6
	}
	return &spinnerPresenter{w: w, pathWidth: pathWidth}
}

func (p *spinnerPresenter) Run(events <-chan event.Event) {
	for ev := range events {
		if ev.Type != event.EntryVisited {
			continue
		}
		now := time.Now()
		if now.Sub(p.lastDraw) < spinnerMinInterval {
			continue
		}
		p.lastDraw = now
		p.draw(ev.Path)
	}
	fmt.Fprint(p.w, ansiClearLine)
}

func (p *spinnerPresenter) draw(path string) {
	frame := spinnerFrames[p.step%len(spinnerFrames)]
	p.step++

	if p.pathWidth > 3 && len(path) > p.pathWidth {
		path = "..." + path[len(path)-(p.pathWidth-3):]
	}
	fmt.Fprintf(p.w, "%s %s %s", ansiClearLine, frame, path)
}
