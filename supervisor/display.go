package supervisor

import (
	"container/ring"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fernandosanchezjr/gocpuminer/messages"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	RefreshSchedule = "@every 1s"
	RecentLogLines  = 10
	clearScreen     = "\033[H\033[2J"
)

// Display redraws the aggregate stats and the latest forwarded worker log lines.
type Display struct {
	collector *Collector
	output    io.Writer
	scheduler *cron.Cron
	recent    *ring.Ring
	mtx       sync.Mutex
}

func NewDisplay(collector *Collector, output io.Writer) *Display {
	return &Display{
		collector: collector,
		output:    output,
		scheduler: cron.New(),
		recent:    ring.New(RecentLogLines),
	}
}

func (d *Display) Start() error {
	if _, err := d.scheduler.AddFunc(RefreshSchedule, d.refresh); err != nil {
		return err
	}
	d.scheduler.Start()
	return nil
}

func (d *Display) Stop() {
	<-d.scheduler.Stop().Done()
}

// AddLogEntry keeps the entry among the most recent RecentLogLines.
func (d *Display) AddLogEntry(entry *messages.LogEntry) {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	d.recent.Value = entry.String()
	d.recent = d.recent.Next()
}

func (d *Display) refresh() {
	if _, err := io.WriteString(d.output, clearScreen+d.Render()); err != nil {
		log.WithError(err).Debug("Display refresh failed")
	}
}

func (d *Display) Render() string {
	var sb strings.Builder
	totals := d.collector.Totals()
	_, _ = fmt.Fprintf(&sb, "Workers: %d\n", totals.Workers)
	_, _ = fmt.Fprintf(&sb, "Hashrate: %s\n", totals.HashRate)
	_, _ = fmt.Fprintf(&sb, "Total hashes: %d\n", totals.Hashes)
	_, _ = fmt.Fprintf(&sb, "Shares: %d accepted / %d sent\n", totals.Accepted, totals.Sending)
	d.mtx.Lock()
	defer d.mtx.Unlock()
	first := true
	d.recent.Do(func(value interface{}) {
		if value == nil {
			return
		}
		if first {
			sb.WriteString("\n")
			first = false
		}
		sb.WriteString(value.(string))
		sb.WriteString("\n")
	})
	return sb.String()
}
