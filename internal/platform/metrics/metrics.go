package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	clientErrors    uint64
	serverErrors    uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 400 && status < 500 {
		atomic.AddUint64(&c.clientErrors, 1)
	}
	if status >= 500 {
		atomic.AddUint64(&c.serverErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	client := atomic.LoadUint64(&c.clientErrors)
	server := atomic.LoadUint64(&c.serverErrors)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"clientErrorsTotal": client,
		"serverErrorsTotal": server,
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
	}
}
