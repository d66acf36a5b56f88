package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"runtime/trace"

	"github.com/fernandosanchezjr/gocpuminer/config"
	"github.com/fernandosanchezjr/gocpuminer/logging"
	"github.com/fernandosanchezjr/gocpuminer/supervisor"
	"github.com/fernandosanchezjr/gocpuminer/utils"
	"github.com/fernandosanchezjr/gocpuminer/worker"
	log "github.com/sirupsen/logrus"
)

var cpuProfile bool
var tracing bool
var workerMode bool
var statsSocket string

func init() {
	flag.BoolVar(&cpuProfile, "cpu-profile", cpuProfile, "enable cpu profiling")
	flag.BoolVar(&tracing, "trace", tracing, "enable tracing")
	flag.BoolVar(&workerMode, "worker", workerMode, "run a single worker")
	flag.StringVar(&statsSocket, "stats", statsSocket, "supervisor socket workers report to")
}

func main() {
	flag.Parse()
	name := "gocpuminer"
	if workerMode {
		name = fmt.Sprintf("worker-%d", os.Getpid())
	}
	logging.SetupLogger(name, !workerMode || statsSocket == "")
	if cpuProfile {
		f, err := os.Create(name + ".prof")
		if err != nil {
			panic(err)
		}
		if err = pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}
	if tracing {
		f, err := os.Create(name + ".trace")
		if err != nil {
			panic(err)
		}
		if err := trace.Start(f); err != nil {
			panic(err)
		}
		defer trace.Stop()
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if workerMode {
		runWorker(cfg)
	} else {
		runSupervisor(cfg)
	}
}

func runWorker(cfg *config.Config) {
	w, err := worker.NewWorker(cfg, statsSocket)
	if err != nil {
		log.WithError(err).Fatal("Could not create worker")
	}
	if err := w.Start(); err != nil {
		log.WithError(err).Error("Pool session not started, worker idle until stopped")
	}
	go func() {
		<-w.Done()
		log.WithField("hashes", w.Engine.Hashes()).Info("Worker running without pool session")
	}()
	utils.Wait()
	w.Stop()
}

func runSupervisor(cfg *config.Config) {
	s := supervisor.NewSupervisor(cfg, config.Path())
	if err := s.Start(); err != nil {
		log.WithError(err).Fatal("Could not start supervisor")
	}
	log.Println("Supervisor started")
	// The display redraws stdout and already shows the latest worker warnings.
	logging.SetConsole(false)
	utils.Wait()
	s.Stop()
	logging.SetConsole(true)
}
