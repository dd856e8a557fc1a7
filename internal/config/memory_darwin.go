//go:build darwin

package config

import "golang.org/x/sys/unix"

// detectSystemMemory reads hw.memsize. Available memory is estimated as
// 75% of the total.
func detectSystemMemory() (total int64, available int64) {
	size, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, 0
	}
	total = int64(size)
	return total, total * 3 / 4
}
