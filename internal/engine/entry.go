package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// DevIno uniquely identifies an inode on a host.
type DevIno struct {
	Dev uint64
	Ino uint64
}

// Entry is a single filesystem entry captured by lstat.
type Entry struct {
	Path string // absolute path
	Name string // base name
	Kind Kind
	Size int64
	stat *syscall.Stat_t
}

// DevIno returns the device and inode numbers identifying this entry.
func (e *Entry) DevIno() DevIno {
	return devInoFromStat(e.stat)
}

// Rdev returns the device number referred to by a device node.
// It is meaningful only for block and char devices.
func (e *Entry) Rdev() uint64 {
	return rdevFromStat(e.stat)
}

func newEntry(path string, info os.FileInfo) (*Entry, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, fmt.Errorf("unsupported stat type for %s", path)
	}
	return &Entry{
		Path: path,
		Name: filepath.Base(path),
		Kind: KindOf(info.Mode()),
		Size: info.Size(),
		stat: stat,
	}, nil
}

// lstatEntry captures the entry at path without following symlinks.
func lstatEntry(path string) (*Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	return newEntry(path, info)
}

// child is one directory member: either a captured entry or the error
// that prevented capturing it.
type child struct {
	entry *Entry
	err   error
}

// readChildren lists dir and lstats every member. Per-member failures are
// recorded in the returned map; only the directory read itself is fatal.
func readChildren(dir string) (map[string]child, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	children := make(map[string]child, len(dirents))
	for _, d := range dirents {
		info, err := d.Info()
		if err != nil {
			children[d.Name()] = child{err: err}
			continue
		}
		entry, err := newEntry(filepath.Join(dir, d.Name()), info)
		if err != nil {
			children[d.Name()] = child{err: err}
			continue
		}
		children[d.Name()] = child{entry: entry}
	}
	return children, nil
}
