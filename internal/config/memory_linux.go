//go:build linux

package config

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// detectSystemMemory reads /proc/meminfo; it returns zeros on failure
func detectSystemMemory() (total int64, available int64) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0, 0
	}
	defer f.Close()
	return parseMemInfo(f)
}

// parseMemInfo extracts total and available bytes from /proc/meminfo
// content. Kernels without MemAvailable get MemFree + Buffers + Cached.
func parseMemInfo(r io.Reader) (total int64, available int64) {
	fields := make(map[string]int64)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		kb, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		fields[strings.TrimSuffix(parts[0], ":")] = kb * KB
	}

	total = fields["MemTotal"]
	available, ok := fields["MemAvailable"]
	if !ok {
		available = fields["MemFree"] + fields["Buffers"] + fields["Cached"]
	}
	return total, available
}
