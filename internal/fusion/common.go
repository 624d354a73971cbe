package fusion

import (
	"context"

	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	MonitorMap = cmap.New[Monitor]()
)

// Monitor is one periodic sensor fusion activity. Every monitor owns a
// disjoint set of measurement fields and is the only writer of those fields.
type Monitor interface {
	GetId() string

	// Run polls the underlying transducer until the context is cancelled.
	Run(ctx context.Context) error
}

func RegisterMonitor(monitor Monitor) {
	MonitorMap.Set(monitor.GetId(), monitor)
}
