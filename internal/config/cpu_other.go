//go:build !darwin && !linux

package config

import "runtime"

func detectOptimalWorkers() int {
	return runtime.NumCPU()
}
