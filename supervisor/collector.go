package supervisor

import (
	"sort"
	"sync"

	"github.com/fernandosanchezjr/gocpuminer/messages"
	"github.com/fernandosanchezjr/gocpuminer/utils"
)

// Totals aggregates the latest snapshot of every known worker.
type Totals struct {
	HashRate utils.HashRate
	Hashes   uint64
	Accepted uint64
	Sending  uint64
	Workers  int
}

// Collector keeps the most recent snapshot per worker process id.
type Collector struct {
	mtx   sync.Mutex
	stats map[int]messages.WorkerStats
}

func NewCollector() *Collector {
	return &Collector{stats: make(map[int]messages.WorkerStats)}
}

func (c *Collector) Update(stats *messages.WorkerStats) {
	if stats == nil {
		return
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.stats[stats.Id] = *stats
}

func (c *Collector) Remove(id int) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	delete(c.stats, id)
}

func (c *Collector) Reset() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.stats = make(map[int]messages.WorkerStats)
}

func (c *Collector) Totals() Totals {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	var t Totals
	for _, stats := range c.stats {
		t.HashRate += utils.HashRate(stats.HashesPerSecond)
		t.Hashes += stats.Hashes
		t.Accepted += stats.Accepted
		t.Sending += stats.Sending
		t.Workers++
	}
	return t
}

// Workers returns a copy of every snapshot, ordered by worker id.
func (c *Collector) Workers() []messages.WorkerStats {
	c.mtx.Lock()
	workers := make([]messages.WorkerStats, 0, len(c.stats))
	for _, stats := range c.stats {
		workers = append(workers, stats)
	}
	c.mtx.Unlock()
	sort.Slice(workers, func(i, j int) bool {
		return workers[i].Id < workers[j].Id
	})
	return workers
}
