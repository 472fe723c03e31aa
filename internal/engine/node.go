package engine

// NodeKind identifies why an entry appears in the diff tree.
type NodeKind int

const (
	NodeMissing NodeKind = iota
	NodeTypeMismatch
	NodeContentDiffers
	NodeError
)

var nodeKindNames = [...]string{
	NodeMissing:        "missing",
	NodeTypeMismatch:   "type mismatch",
	NodeContentDiffers: "content differs",
	NodeError:          "error",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "unknown"
	}
	return nodeKindNames[k]
}

// Side identifies one of the two trees under comparison.
type Side int

const (
	SideFirst Side = iota
	SideSecond
)

// Prune records why a differing directory was reported without its children.
type Prune int

const (
	PruneNone Prune = iota
	PrunePattern
	PruneDepth
)

// Node is one entry in the diff tree. Identical entries produce no node, so
// an empty child slice under a directory pair means the pair was dropped
// before it reached the caller.
type Node struct {
	Kind NodeKind
	Name string

	// Only names the tree a NodeMissing entry exists in.
	Only Side

	// APath and BPath hold the absolute directory paths behind a
	// NodeContentDiffers directory pair, so later passes can revisit it.
	APath string
	BPath string

	// Pruned marks a differing directory pair whose children were
	// deliberately not compared.
	Pruned Prune

	// Err carries the failure message for NodeError nodes.
	Err string

	Children []Node
}

// DirPair reports whether the node stands for a pair of directories.
func (n *Node) DirPair() bool {
	return n.APath != ""
}
