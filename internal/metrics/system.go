package metrics

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemSnapshot holds a point-in-time system-wide resource reading.
type SystemSnapshot struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// SystemSample collects a single system-wide CPU and memory snapshot. CPU
// uses interval=0 (delta since last call). Returns zero values on error so
// verbose diagnostics never fail a run.
func SystemSample() SystemSnapshot {
	var s SystemSnapshot
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}
