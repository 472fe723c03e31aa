package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/bamsammich/dirdiff/internal/engine"
)

// Listing colors, one per marker. The global color.NoColor switch decides
// whether they emit escape sequences.
var (
	colorOnlyFirst  = color.New(color.FgRed)
	colorOnlySecond = color.New(color.FgGreen)
	colorTypeDiff   = color.New(color.FgBlue)
	colorContent    = color.New(color.FgYellow)
	colorError      = color.New(color.FgRed, color.Bold)
)

// Renderer writes the human-readable diff listing.
type Renderer struct {
	w        io.Writer
	noLegend bool
}

// NewRenderer creates a renderer writing to w. noLegend drops the legend
// block above the listing.
func NewRenderer(w io.Writer, noLegend bool) *Renderer {
	return &Renderer{w: w, noLegend: noLegend}
}

// Render writes the legend and the indented listing for the diff tree
// rooted at root. The caller handles the no-differences case; Render is
// only called with something to show.
func (r *Renderer) Render(root engine.Node) {
	if !r.noLegend {
		r.renderLegend()
	}
	fmt.Fprintln(r.w, "Diff:")
	r.renderNode(root, 0)
}

func (r *Renderer) renderLegend() {
	fmt.Fprintf(r.w, "Legend:\t%s - exists only in 1st tree\n", colorOnlyFirst.Sprint("- foo"))
	fmt.Fprintf(r.w, "\t%s - exists only in 2nd tree\n", colorOnlySecond.Sprint("+ foo"))
	fmt.Fprintf(r.w, "\t%s - types differ (directory vs file)\n", colorTypeDiff.Sprint("! foo"))
	fmt.Fprintf(r.w, "\t%s - contents differ\n", colorContent.Sprint("? foo"))
	fmt.Fprintf(r.w, "\t%s - could not be compared (read error)\n", colorError.Sprint("x foo"))
}

func (r *Renderer) renderNode(n engine.Node, depth int) {
	indent := strings.Repeat("|  ", depth)

	switch n.Kind {
	case engine.NodeMissing:
		marker := colorOnlySecond.Sprint("+ " + n.Name)
		if n.Only == engine.SideFirst {
			marker = colorOnlyFirst.Sprint("- " + n.Name)
		}
		fmt.Fprintf(r.w, "%s%s\n", indent, marker)

	case engine.NodeTypeMismatch:
		fmt.Fprintf(r.w, "%s%s\n", indent, colorTypeDiff.Sprint("! "+n.Name))

	case engine.NodeError:
		fmt.Fprintf(r.w, "%s%s (%s)\n", indent, colorError.Sprint("x "+n.Name), n.Err)

	case engine.NodeContentDiffers:
		marker := colorContent.Sprint("? " + n.Name)
		switch {
		case n.Pruned == engine.PrunePattern:
			fmt.Fprintf(r.w, "%s%s (not descending)\n", indent, marker)
		case n.Pruned == engine.PruneDepth:
			fmt.Fprintf(r.w, "%s%s (pruned; different)\n", indent, marker)
		case len(n.Children) == 0:
			fmt.Fprintf(r.w, "%s%s\n", indent, marker)
		default:
			fmt.Fprintf(r.w, "%s%s:\n", indent, marker)
			for _, child := range n.Children {
				r.renderNode(child, depth+1)
			}
		}
	}
}
