// Package observability keeps the counters of the feed and a periodic snapshot of
// them, enriched with process metrics, for the health and debug endpoints.
package observability

import (
	"chat-feed/contract"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

var _ contract.IFeedMonitor = (*MonitoringManager)(nil)

// MonitoringStats is the last computed snapshot.
type MonitoringStats struct {
	Appended      uint64    `json:"appended"`
	Rejected      uint64    `json:"rejected"`
	Censored      uint64    `json:"censored"`
	StorageErrors uint64    `json:"storage_errors"`
	Delivered     uint64    `json:"delivered"`
	AppendRate    float64   `json:"append_rate"` // messages per second since the previous snapshot
	Subscriptions int       `json:"subscriptions"`
	AllocMemMb    uint64    `json:"alloc_mem_mb"`
	NumGC         uint32    `json:"num_gc"`
	Goroutines    int       `json:"goroutines"`
	RSSBytes      uint64    `json:"rss_bytes"`
	CPUPercent    float64   `json:"cpu_percent"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProcessStats is what the process probe measures.
type ProcessStats struct {
	RSSBytes   uint64
	CPUPercent float64
}

// MonitoringManager counts feed events with atomics. Update folds them into a snapshot.
type MonitoringManager struct {
	log *slog.Logger

	appended      atomic.Uint64
	rejected      atomic.Uint64
	censored      atomic.Uint64
	storageErrors atomic.Uint64
	delivered     atomic.Uint64

	mu           sync.RWMutex
	latest       MonitoringStats
	lastAppended uint64
	lastCheck    time.Time
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{log: log, lastCheck: time.Now()}
}

func (mm *MonitoringManager) IncrAppended()      { mm.appended.Add(1) }
func (mm *MonitoringManager) IncrRejected()      { mm.rejected.Add(1) }
func (mm *MonitoringManager) IncrStorageErrors() { mm.storageErrors.Add(1) }
func (mm *MonitoringManager) IncrDelivered()     { mm.delivered.Add(1) }

func (mm *MonitoringManager) IncrCensored(n int) {
	if n > 0 {
		mm.censored.Add(uint64(n))
	}
}

// Update computes a new snapshot. subscriptions and process are sampled by the caller.
func (mm *MonitoringManager) Update(subscriptions int, process ProcessStats) MonitoringStats {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	now := time.Now()
	appended := mm.appended.Load()
	stats := MonitoringStats{
		Appended:      appended,
		Rejected:      mm.rejected.Load(),
		Censored:      mm.censored.Load(),
		StorageErrors: mm.storageErrors.Load(),
		Delivered:     mm.delivered.Load(),
		Subscriptions: subscriptions,
		Goroutines:    runtime.NumGoroutine(),
		RSSBytes:      process.RSSBytes,
		CPUPercent:    process.CPUPercent,
		UpdatedAt:     now.UTC(),
	}
	if elapsed := now.Sub(mm.lastCheck).Seconds(); elapsed > 0 {
		stats.AppendRate = float64(appended-mm.lastAppended) / elapsed
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	stats.AllocMemMb = m.Alloc / 1024 / 1024
	stats.NumGC = m.NumGC

	mm.latest = stats
	mm.lastAppended = appended
	mm.lastCheck = now

	mm.log.Debug("Stats updated",
		"appended", stats.Appended,
		"append_rate", stats.AppendRate,
		"subscriptions", stats.Subscriptions,
		"mem_mb", stats.AllocMemMb,
	)
	return stats
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.latest
}

// AsMap flattens the latest snapshot for JSON endpoints.
func (mm *MonitoringManager) AsMap() map[string]any {
	s := mm.GetLatest()
	return map[string]any{
		"appended":       s.Appended,
		"rejected":       s.Rejected,
		"censored":       s.Censored,
		"storage_errors": s.StorageErrors,
		"delivered":      s.Delivered,
		"append_rate":    s.AppendRate,
		"alloc_mem_mb":   s.AllocMemMb,
		"num_gc":         s.NumGC,
		"goroutines":     s.Goroutines,
		"rss_bytes":      s.RSSBytes,
		"cpu_percent":    s.CPUPercent,
		"updated_at":     s.UpdatedAt,
	}
}
