//go:build !darwin && !linux

package config

func detectSystemMemory() (total int64, available int64) {
	return 0, 0
}
