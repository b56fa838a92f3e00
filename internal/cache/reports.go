package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/tezexpress/courier-manager/internal/entity"
)

// Reports memoizes analytics bundles per (period, courier) key. The engine is
// a pure fold over a frozen input set, so a cached report stays valid until
// the sync writes new snapshots; a short TTL keeps staleness bounded.
type Reports struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]reportEntry
}

type reportEntry struct {
	data *entity.AnalyticsData
	at   time.Time
}

func NewReports(ttl time.Duration) *Reports {
	return &Reports{
		ttl: ttl,
		m:   make(map[string]reportEntry),
	}
}

// Key identifies one analytics invocation.
func Key(period entity.TimeRange, courierId int) string {
	return fmt.Sprintf("%d:%d:%d", period.From.Unix(), period.To.Unix(), courierId)
}

func (r *Reports) Get(key string) (*entity.AnalyticsData, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.m[key]
	if !ok {
		return nil, false
	}
	if r.ttl > 0 && time.Since(e.at) > r.ttl {
		return nil, false
	}
	return e.data, true
}

func (r *Reports) Set(key string, data *entity.AnalyticsData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[key] = reportEntry{data: data, at: time.Now()}
}

// Invalidate drops every cached report. The sync calls it after writing a
// snapshot batch.
func (r *Reports) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = make(map[string]reportEntry)
}
