package ui

import (
	"io"

	"github.com/bamsammich/dirdiff/internal/event"
)

// Presenter consumes engine events and displays traversal progress.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan event.Event)
}

// Config configures a Presenter.
type Config struct {
	Writer io.Writer // progress destination, normally stderr
	Width  int       // terminal width in columns
	IsTTY  bool
	Quiet  bool
}

// NewPresenter returns a spinner on interactive terminals and a silent
// drain otherwise. Progress never lands in a pipe: the listing owns
// stdout and non-TTY stderr stays clean for errors.
//
//nolint:ireturn // the implementation depends on runtime TTY state
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet || !cfg.IsTTY {
		return &quietPresenter{}
	}
	return newSpinner(cfg.Writer, cfg.Width)
}

// quietPresenter consumes events and produces no output.
type quietPresenter struct{}

func (p *quietPresenter) Run(events <-chan event.Event) {
	for range events {
	}
}
