//go:build linux

package engine

import "syscall"

// devInoFromStat returns the device and inode numbers from a syscall.Stat_t.
func devInoFromStat(stat *syscall.Stat_t) DevIno {
	return DevIno{Dev: stat.Dev, Ino: stat.Ino}
}

// rdevFromStat returns the referenced device number of a device node.
func rdevFromStat(stat *syscall.Stat_t) uint64 {
	return stat.Rdev
}
