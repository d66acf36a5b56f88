package utils

import (
	"os"
	"os/signal"
	"syscall"
)

func Wait() {
	exitChan := make(chan os.Signal, 1)
	signal.Notify(exitChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(exitChan)
	<-exitChan
}
