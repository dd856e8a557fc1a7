package config

// Size units
const (
	KB = 1024
	MB = 1024 * KB
	GB = 1024 * MB
)

// SystemMemory holds system memory information
type SystemMemory struct {
	Total     int64
	Available int64
}

// getSystemMemory returns detected memory, or 16GB total and 12GB
// available when detection fails
func getSystemMemory() SystemMemory {
	total, available := detectSystemMemory()
	if total == 0 {
		return SystemMemory{Total: 16 * GB, Available: 12 * GB}
	}
	return SystemMemory{Total: total, Available: available}
}
