package worker

import (
	"github.com/fernandosanchezjr/gocpuminer/messages"
	"github.com/fernandosanchezjr/gocpuminer/networking/services"
	log "github.com/sirupsen/logrus"
)

type Sender interface {
	Send(service, funcName string, request interface{}) error
}

// StatsReporter sends snapshots to the supervisor without waiting for it.
type StatsReporter struct {
	sender Sender
}

func NewStatsReporter(sender Sender) *StatsReporter {
	return &StatsReporter{sender: sender}
}

func (sr *StatsReporter) Report(stats *messages.WorkerStats) {
	raw, err := stats.Encode()
	if err != nil {
		log.WithError(err).Debug("Error encoding stats")
		return
	}
	if err := sr.sender.Send(services.StatsService, "Report", raw); err != nil {
		log.WithError(err).Debug("Error reporting stats")
	}
}
