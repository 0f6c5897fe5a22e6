package workers

import (
	"chat-feed/observability"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

const defaultMetricInterval = 5 * time.Second

// MonitoringWorker refreshes the monitoring snapshot on every tick, sampling the live
// subscriptions of the store and the resource usage of the process.
type MonitoringWorker struct {
	log            *slog.Logger
	monitoring     *observability.MonitoringManager
	subscriptions  func() int
	metricInterval time.Duration
}

func NewMonitoringWorker(log *slog.Logger, monitoring *observability.MonitoringManager,
	subscriptions func() int, metricInterval time.Duration) *MonitoringWorker {
	if metricInterval <= 0 {
		metricInterval = defaultMetricInterval
	}
	return &MonitoringWorker{
		log:            log,
		monitoring:     monitoring,
		subscriptions:  subscriptions,
		metricInterval: metricInterval,
	}
}

func (w *MonitoringWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		w.log.Warn("Process metrics unavailable", "err", err)
		p = nil
	}
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	w.monitoring.Update(w.subscriptions(), selfStats(w.log, p))
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping monitoring")
			return nil
		case <-ticker.C:
			w.monitoring.Update(w.subscriptions(), selfStats(w.log, p))
		}
	}
}

// selfStats reads memory and CPU of the process. Failures leave the fields at zero.
func selfStats(log *slog.Logger, p *process.Process) observability.ProcessStats {
	var stats observability.ProcessStats
	if p == nil {
		return stats
	}
	if memInfo, err := p.MemoryInfo(); err != nil {
		log.Debug("Error while finding process ram usage", "err", err)
	} else {
		stats.RSSBytes = memInfo.RSS
	}
	if cpu, err := p.CPUPercent(); err != nil {
		log.Debug("Error while finding process cpu usage", "err", err)
	} else {
		stats.CPUPercent = cpu
	}
	return stats
}
