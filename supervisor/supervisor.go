package supervisor

import (
	"os"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/fernandosanchezjr/gocpuminer/config"
	"github.com/fernandosanchezjr/gocpuminer/messages"
	"github.com/fernandosanchezjr/gocpuminer/networking/server"
	"github.com/fernandosanchezjr/gocpuminer/networking/services"
	"github.com/fernandosanchezjr/gocpuminer/utils"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/valyala/gorpc"
)

const (
	RunPath        = "run"
	ReloadDebounce = 2 * time.Second
)

// Supervisor runs one worker process per configured worker and aggregates their stats.
type Supervisor struct {
	Config       *config.Config
	ConfigPath   string
	SocketPath   string
	Collector    *Collector
	Display      *Display
	Status       *StatusService
	Command      CommandFunc
	RestartDelay time.Duration
	server       *gorpc.Server
	watcher      *fsnotify.Watcher
	workers      []*workerProcess
	mtx          sync.Mutex
	reloadMtx    sync.Mutex
}

func NewSupervisor(cfg *config.Config, configPath string) *Supervisor {
	collector := NewCollector()
	socketPath := path.Join(utils.GetSubFolder(RunPath), "stats-"+strconv.Itoa(os.Getpid())+".sock")
	return &Supervisor{
		Config:       cfg,
		ConfigPath:   configPath,
		SocketPath:   socketPath,
		Collector:    collector,
		Display:      NewDisplay(collector, os.Stdout),
		Status:       NewStatusService(collector),
		Command:      SelfCommand,
		RestartDelay: RestartDelay,
	}
}

func (s *Supervisor) Registry() *services.Registry {
	registry := services.NewRegistry()
	registry.AddService(services.StatsService, services.NewStats(s.Collector.Update))
	registry.AddService(services.LoggingService, services.NewLogging(s.ingest))
	return registry
}

func (s *Supervisor) ingest(entry *messages.LogEntry) {
	s.Display.AddLogEntry(entry)
	log.WithFields(log.Fields{
		"worker": entry.Worker,
		"level":  entry.Level,
		"time":   entry.Time,
	}).Println(entry.Message)
}

func (s *Supervisor) Start() error {
	s.server = server.NewServer(s.SocketPath, s.Registry())
	if err := s.server.Start(); err != nil {
		return err
	}
	if s.Config.StatusAddress != "" {
		if err := s.Status.Start(s.Config.StatusAddress); err != nil {
			s.server.Stop()
			return err
		}
	}
	if err := s.Display.Start(); err != nil {
		s.Status.Stop()
		s.server.Stop()
		return err
	}
	s.startWorkers()
	if s.ConfigPath != "" {
		watcher, err := utils.NewFileWatcher(s.ConfigPath, ReloadDebounce, s.Reload)
		if err != nil {
			log.WithError(err).Warn("Config reload disabled")
		} else {
			s.watcher = watcher
		}
	}
	return nil
}

func (s *Supervisor) Stop() {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	s.stopWorkers()
	s.Display.Stop()
	s.Status.Stop()
	if s.server != nil {
		s.server.Stop()
	}
	_ = os.Remove(s.SocketPath)
}

// WorkerArgs are the flags a worker process is started with.
func (s *Supervisor) WorkerArgs() []string {
	args := []string{"-worker", "-stats", s.SocketPath, "-home-folder", utils.GetHomeFolder()}
	if s.ConfigPath != "" {
		args = append(args, "-config", s.ConfigPath)
	}
	return args
}

func (s *Supervisor) startWorkers() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	count := s.Config.WorkerCount()
	log.WithFields(log.Fields{
		"workers": count,
		"pool":    s.Config.Pool.URL,
		"algo":    s.Config.Algorithm,
	}).Info("Starting workers")
	for i := 0; i < count; i++ {
		wp := newWorkerProcess(i, s.Command, s.WorkerArgs(), s.RestartDelay, s.Collector.Remove)
		s.workers = append(s.workers, wp)
		wp.Start()
	}
}

func (s *Supervisor) stopWorkers() {
	s.mtx.Lock()
	workers := s.workers
	s.workers = nil
	s.mtx.Unlock()
	var wg sync.WaitGroup
	for _, wp := range workers {
		wg.Add(1)
		go func(wp *workerProcess) {
			defer wg.Done()
			wp.Stop()
		}(wp)
	}
	wg.Wait()
	s.Collector.Reset()
}

// Reload restarts every worker when the configuration file still loads.
func (s *Supervisor) Reload() {
	s.reloadMtx.Lock()
	defer s.reloadMtx.Unlock()
	cfg, err := config.LoadConfigFile(s.ConfigPath)
	if err != nil {
		log.WithError(err).Error("Config reload failed, keeping current workers")
		return
	}
	current := s.CurrentConfig()
	if cfg.StatusAddress != current.StatusAddress {
		log.WithField("status", cfg.StatusAddress).Warn("Status address changes need a restart")
		cfg.StatusAddress = current.StatusAddress
	}
	log.WithField("path", s.ConfigPath).Info("Config changed, restarting workers")
	s.stopWorkers()
	s.mtx.Lock()
	s.Config = cfg
	s.mtx.Unlock()
	s.startWorkers()
}

func (s *Supervisor) CurrentConfig() *config.Config {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.Config
}

func (s *Supervisor) WorkerCount() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.workers)
}
