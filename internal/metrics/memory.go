package metrics

import (
	"fmt"
	"runtime"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use
	Sys         uint64 // bytes obtained from the OS
	NumGC       uint32
	HeapObjects uint64
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
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}

// String renders the snapshot for the verbose footer.
func (s MemorySnapshot) String() string {
	return fmt.Sprintf("heap %.1f MiB, sys %.1f MiB, %d objects, %d GC cycles",
		float64(s.HeapAlloc)/(1<<20), float64(s.Sys)/(1<<20), s.HeapObjects, s.NumGC)
}
