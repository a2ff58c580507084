package renderer

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// DefaultWorkerCount returns the number of logical CPUs, falling back to the
// Go runtime's count when the host can't be queried
func DefaultWorkerCount() int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		return runtime.NumCPU()
	}
	return count
}

// SystemInfo describes the machine a render runs on
type SystemInfo struct {
	CPUModel     string  `json:"cpuModel"`
	LogicalCores int     `json:"logicalCores"`
	ClockGHz     float64 `json:"clockGHz"`
	TotalRAMGB   uint64  `json:"totalRamGB"`
}

// GetSystemInfo queries CPU and memory details. Fields that can't be read are left zero.
func GetSystemInfo() (SystemInfo, error) {
	info := SystemInfo{LogicalCores: DefaultWorkerCount()}

	cpuInfo, err := cpu.Info()
	if err != nil {
		return info, fmt.Errorf("failed to read CPU info: %w", err)
	}
	if len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
		info.ClockGHz = cpuInfo[0].Mhz / 1000
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return info, fmt.Errorf("failed to read memory info: %w", err)
	}
	info.TotalRAMGB = memInfo.Total / (1024 * 1024 * 1024)

	return info, nil
}

// String formats the info for a log line
func (s SystemInfo) String() string {
	model := s.CPUModel
	if model == "" {
		model = "unknown CPU"
	}
	return fmt.Sprintf("%s (%d logical cores, %.2f GHz), %d GB RAM", model, s.LogicalCores, s.ClockGHz, s.TotalRAMGB)
}
