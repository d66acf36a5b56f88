package server

import (
	"errors"
	"os"

	"github.com/fernandosanchezjr/gocpuminer/networking/services"
	log "github.com/sirupsen/logrus"
	"github.com/valyala/gorpc"
)

// NewServer serves registry on a unix socket, replacing any stale socket file left at socketPath.
func NewServer(socketPath string, registry *services.Registry) *gorpc.Server {
	dispatcher := gorpc.NewDispatcher()
	for name, service := range registry.Services {
		dispatcher.AddService(name, service)
	}
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).WithField("socket", socketPath).Warn("Could not remove stale socket")
	}
	server := gorpc.NewUnixServer(socketPath, dispatcher.NewHandlerFunc())
	server.LogError = gorpc.NilErrorLogger
	return server
}
