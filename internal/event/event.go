package event

// Type identifies the kind of event.
type Type int

const (
	EntryVisited Type = iota + 1
	EntryError
)

var typeNames = [...]string{
	EntryVisited: "EntryVisited",
	EntryError:   "EntryError",
}

func (t Type) String() string {
	if t >= 1 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the comparison engine.
type Event struct {
	Type  Type
	Path  string // slash-separated path relative to the tree roots
	Error error  // set for EntryError
}
