package engine

import "os"

// Kind identifies the kind of filesystem entry, as seen by lstat.
// Symlinks are never followed, so a link to a directory is KindSymlink.
type Kind int

const (
	KindRegular Kind = iota
	KindDirectory
	KindSymlink
	KindBlockDevice
	KindCharDevice
	KindFifo
	KindSocket
	KindUnknown
)

var kindNames = [...]string{
	KindRegular:     "regular file",
	KindDirectory:   "directory",
	KindSymlink:     "symlink",
	KindBlockDevice: "block device",
	KindCharDevice:  "char device",
	KindFifo:        "fifo",
	KindSocket:      "socket",
	KindUnknown:     "unknown",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// KindOf maps a file mode to an entry kind. The mode must come from
// Lstat (or DirEntry.Info), not Stat, so symlinks classify as themselves.
func KindOf(mode os.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindRegular
	case mode.IsDir():
		return KindDirectory
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode&os.ModeCharDevice != 0:
		return KindCharDevice
	case mode&os.ModeDevice != 0:
		return KindBlockDevice
	case mode&os.ModeNamedPipe != 0:
		return KindFifo
	case mode&os.ModeSocket != 0:
		return KindSocket
	default:
		return KindUnknown
	}
}
