package logging

import (
	"os"

	"github.com/fernandosanchezjr/gocpuminer/messages"
	"github.com/fernandosanchezjr/gocpuminer/networking/services"
	log "github.com/sirupsen/logrus"
)

type Sender interface {
	Send(service, funcName string, request interface{}) error
}

// IngestHook forwards warnings and errors to the supervisor.
type IngestHook struct {
	sender   Sender
	Worker   int
	HostName string
}

func NewIngestHook(sender Sender) *IngestHook {
	if hostname, err := os.Hostname(); err != nil {
		panic(err)
	} else {
		return &IngestHook{sender: sender, Worker: os.Getpid(), HostName: hostname}
	}
}

func (ih *IngestHook) Levels() []log.Level {
	return []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel, log.WarnLevel}
}

func (ih *IngestHook) Fire(entry *log.Entry) error {
	raw, err := messages.NewLogEntry(ih.Worker, ih.HostName, entry).Encode()
	if err != nil {
		return err
	}
	return ih.sender.Send(services.LoggingService, "Ingest", raw)
}
