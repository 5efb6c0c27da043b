package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of the runtime heap. The mask
// tables dominate allocation, so the batch summary reports these figures.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes of allocated heap objects
	HeapSys      uint64 // heap bytes obtained from the OS
	Sys          uint64 // total bytes obtained from the OS
	NumGC        uint32 // completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// GCSince returns the GC cycles and pause time accumulated since before.
func (s MemorySnapshot) GCSince(before MemorySnapshot) (cycles uint32, pauseNs uint64) {
	return s.NumGC - before.NumGC, s.PauseTotalNs - before.PauseTotalNs
}
