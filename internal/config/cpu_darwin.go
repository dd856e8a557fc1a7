//go:build darwin

package config

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// detectOptimalWorkers prefers the performance cores on Apple Silicon and
// falls back to the physical core count, then to all logical CPUs
func detectOptimalWorkers() int {
	for _, name := range []string{"hw.perflevel0.physicalcpu", "hw.physicalcpu"} {
		if n, err := unix.SysctlUint32(name); err == nil && n > 0 {
			return int(n)
		}
	}
	return runtime.NumCPU()
}
