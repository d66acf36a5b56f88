package services

import (
	"github.com/fernandosanchezjr/gocpuminer/messages"
	log "github.com/sirupsen/logrus"
)

const LoggingService = "Logging"

type LoggingHandler func(entry *messages.LogEntry)

type Logging struct {
	handler LoggingHandler
}

func NewLogging(handler LoggingHandler) *Logging {
	return &Logging{handler: handler}
}

func (l *Logging) Ingest(rawEntry []byte) {
	entry, err := messages.DecodeLogEntry(rawEntry)
	if err != nil {
		log.WithError(err).Error("Error decoding ingested payload")
		return
	}
	if l.handler != nil {
		l.handler(entry)
	}
}
