package internal

import (
	"expvar"
	"runtime"
	"sync"
	"time"
)

var stats *expvar.Map

func init() {
	stats = NewStats("ghuser")
}

// TimeVar ...
type TimeVar struct {
	sync.RWMutex
	v time.Time
}

// Set ...
func (o *TimeVar) Set(date time.Time) {
	o.Lock()
	defer o.Unlock()
	o.v = date
}

// String ...
func (o *TimeVar) String() string {
	o.RLock()
	defer o.RUnlock()
	return o.v.Format(time.RFC3339)
}

// NewStats ...
func NewStats(name string) *expvar.Map {
	stats := expvar.NewMap(name)

	stats.Set("goroutines", expvar.Func(func() interface{} {
		return runtime.NumGoroutine()
	}))
	stats.Set("cpus", expvar.Func(func() interface{} {
		return runtime.NumCPU()
	}))

	started := &TimeVar{}
	started.Set(time.Now())
	stats.Set("started", started)
	stats.Set("last_fallback", &TimeVar{})
	stats.Set("fallbacks", new(expvar.Map).Init())

	return stats
}

func countFallback(branch string) {
	stats.Get("fallbacks").(*expvar.Map).Add(branch, 1)
	stats.Get("last_fallback").(*TimeVar).Set(time.Now())
}
