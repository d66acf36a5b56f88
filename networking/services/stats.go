package services

import (
	"github.com/fernandosanchezjr/gocpuminer/messages"
	log "github.com/sirupsen/logrus"
)

const StatsService = "Stats"

type StatsHandler func(stats *messages.WorkerStats)

// Stats receives gob encoded worker snapshots.
type Stats struct {
	handler StatsHandler
}

func NewStats(handler StatsHandler) *Stats {
	return &Stats{handler: handler}
}

func (s *Stats) Report(rawStats []byte) {
	stats, err := messages.DecodeWorkerStats(rawStats)
	if err != nil {
		log.WithError(err).Error("Error decoding stats payload")
		return
	}
	if s.handler != nil {
		s.handler(stats)
	}
}
