//go:build linux

package config

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// detectOptimalWorkers prefers the performance cores of a hybrid CPU and
// falls back to all logical CPUs
func detectOptimalWorkers() int {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return runtime.NumCPU()
	}
	defer f.Close()

	if perf := countPerfCores(f); perf > 0 {
		return perf
	}
	return runtime.NumCPU()
}

// countPerfCores reads /proc/cpuinfo content and returns the number of
// physical cores clocked within 10% of the mean core frequency, or 0 when
// the cores look homogeneous
func countPerfCores(r io.Reader) int {
	coreFreq := make(map[int]float64) // core id -> highest MHz seen

	// "cpu MHz" precedes "core id" within a processor block, so each block
	// is committed when the next one starts
	coreID, freq := -1, 0.0
	commit := func() {
		if coreID >= 0 && freq > coreFreq[coreID] {
			coreFreq[coreID] = freq
		}
		coreID, freq = -1, 0
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "processor":
			commit()
		case "core id":
			if id, err := strconv.Atoi(value); err == nil {
				coreID = id
			}
		case "cpu MHz":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				freq = f
			}
		}
	}
	commit()

	if len(coreFreq) <= 2 {
		return 0
	}

	var sum float64
	for _, f := range coreFreq {
		sum += f
	}
	threshold := sum / float64(len(coreFreq)) * 0.9

	perf := 0
	for _, f := range coreFreq {
		if f >= threshold {
			perf++
		}
	}
	if perf == len(coreFreq) {
		return 0
	}
	return perf
}
