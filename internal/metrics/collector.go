// Package metrics provides lightweight process counters in Prometheus
// exposition format without requiring the heavy prometheus/client_golang
// dependency. The bridge has no web surface, so the counters are dumped
// once at shutdown instead of being scraped.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing counter.
type Counter struct {
	name  string
	help  string
	value atomic.Int64
}

// Inc increments the counter by 1.
func (c *Counter) Inc() { c.value.Add(1) }

// Add increments the counter by n.
func (c *Counter) Add(n int64) { c.value.Add(n) }

// Value returns the current counter value.
func (c *Counter) Value() int64 { return c.value.Load() }

type collector struct {
	mu       sync.Mutex
	counters []*Counter
	start    time.Time
}

var defaultCollector = &collector{start: time.Now()}

// NewCounter registers a counter with the process-wide collector.
func NewCounter(name, help string) *Counter {
	c := &Counter{name: name, help: help}
	defaultCollector.mu.Lock()
	defaultCollector.counters = append(defaultCollector.counters, c)
	defaultCollector.mu.Unlock()
	return c
}

// Bridge counters.
var (
	EventsSeen       = NewCounter("wabridge_events_seen_total", "Inbound message events observed")
	EventsRejected   = NewCounter("wabridge_events_rejected_total", "Events dropped by the sender or type filters")
	EventsForwarded  = NewCounter("wabridge_events_forwarded_total", "Media successfully delivered to the destination")
	EventsFailed     = NewCounter("wabridge_events_failed_total", "Forwards that ended in a user-visible error")
	DeliveryAttempts = NewCounter("wabridge_delivery_attempts_total", "Individual destination send attempts, retries included")
)

// Uptime returns how long the collector has been running.
func Uptime() time.Duration {
	return time.Since(defaultCollector.start)
}

// WriteTo dumps all registered counters in Prometheus text format, sorted
// by name.
func WriteTo(w io.Writer) {
	defaultCollector.mu.Lock()
	counters := make([]*Counter, len(defaultCollector.counters))
	copy(counters, defaultCollector.counters)
	defaultCollector.mu.Unlock()

	sort.Slice(counters, func(i, j int) bool { return counters[i].name < counters[j].name })
	for _, c := range counters {
		fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", c.name)
		fmt.Fprintf(w, "%s %d\n", c.name, c.Value())
	}
}
