package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Dispatch tracks outbox delivery for the health endpoint.
type Dispatch struct {
	Delivered     Counter
	Failed        Counter
	Skipped       Counter
	Notifications Counter

	lastNanos int64
}

func NewDispatch() *Dispatch {
	return &Dispatch{}
}

func (d *Dispatch) Observe(t *Timer) {
	atomic.StoreInt64(&d.lastNanos, int64(t.Duration()))
}

type DispatchSnapshot struct {
	Delivered      uint64 `json:"delivered"`
	Failed         uint64 `json:"failed"`
	Skipped        uint64 `json:"skipped"`
	Notifications  uint64 `json:"notifications"`
	LastDurationMs int64  `json:"lastDurationMs"`
}

func (d *Dispatch) Snapshot() DispatchSnapshot {
	return DispatchSnapshot{
		Delivered:      d.Delivered.Load(),
		Failed:         d.Failed.Load(),
		Skipped:        d.Skipped.Load(),
		Notifications:  d.Notifications.Load(),
		LastDurationMs: time.Duration(atomic.LoadInt64(&d.lastNanos)).Milliseconds(),
	}
}
