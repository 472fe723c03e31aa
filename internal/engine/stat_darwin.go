//go:build darwin

package engine

import "syscall"

// devInoFromStat returns the device and inode numbers from a syscall.Stat_t.
func devInoFromStat(stat *syscall.Stat_t) DevIno {
	return DevIno{
		Dev: uint64(stat.Dev), //nolint:gosec // G115: dev_t is int32 on darwin, always non-negative
		Ino: stat.Ino,
	}
}

// rdevFromStat returns the referenced device number of a device node.
func rdevFromStat(stat *syscall.Stat_t) uint64 {
	return uint64(stat.Rdev) //nolint:gosec // G115: dev_t is int32 on darwin, always non-negative
}
