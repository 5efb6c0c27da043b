// Package sysmon samples host-wide CPU and memory load. The batch driver
// logs a sample before and after a run so a slow table can be told apart
// from a busy machine.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Load is one snapshot of host resource usage.
type Load struct {
	CPUPercent float64 // 0.0 .. 100.0, averaged over all cores
	MemPercent float64 // 0.0 .. 100.0
	MemTotal   uint64  // bytes of physical memory
}

// Sample collects a host-wide snapshot. CPU usage is the delta since the
// previous call (interval 0), so the first sample of a process may read 0.
// Fields whose probe fails stay zero.
func Sample(ctx context.Context) Load {
	var l Load
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		l.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		l.MemPercent = vm.UsedPercent
		l.MemTotal = vm.Total
	}
	return l
}
