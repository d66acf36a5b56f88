package worker

import (
	"sync"
	"time"

	"github.com/fernandosanchezjr/gocpuminer/config"
	"github.com/fernandosanchezjr/gocpuminer/hashing"
	"github.com/fernandosanchezjr/gocpuminer/logging"
	"github.com/fernandosanchezjr/gocpuminer/miner"
	"github.com/fernandosanchezjr/gocpuminer/networking/client"
	"github.com/fernandosanchezjr/gocpuminer/networking/services"
	"github.com/fernandosanchezjr/gocpuminer/stratum"
	"github.com/fernandosanchezjr/gocpuminer/utils"
	log "github.com/sirupsen/logrus"
)

const ReportInterval = 5 * time.Second

// Worker is one miner process: its own identity, pool session and search engine.
type Worker struct {
	Config   *config.Config
	Identity string
	Pool     *stratum.Pool
	Engine   *miner.Engine
	hasher   hashing.Hasher
	client   *client.Client
	reporter miner.Reporter
	quit     chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewWorker reports to the supervisor listening on statsSocket, or logs stats locally when it is
// empty.
func NewWorker(cfg *config.Config, statsSocket string) (*Worker, error) {
	hasher, err := hashing.New(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	w := &Worker{
		Config:   cfg,
		Identity: utils.NewIdentity(),
		hasher:   hasher,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if statsSocket != "" {
		w.client = client.NewClient(statsSocket, services.NewWorkerRegistry())
		w.reporter = NewStatsReporter(w.client)
	}
	w.Pool = stratum.NewPool(cfg.Pool, cfg.Algorithm, w.Identity, w)
	w.Engine = miner.NewEngine(hasher, w.Pool, w.Pool, w.reporter)
	w.Pool.OnAccepted = w.report
	return w, nil
}

func (w *Worker) SetJob(job *stratum.Job) {
	w.Engine.SetJob(job)
}

func (w *Worker) Start() error {
	if w.client != nil {
		w.client.Start()
		log.AddHook(logging.NewIngestHook(w.client))
	}
	log.WithFields(log.Fields{
		"identity":  w.Identity,
		"algorithm": w.Config.Algorithm,
	}).Info("Worker starting")
	w.wg.Add(1)
	go w.monitor()
	return w.Pool.Start()
}

func (w *Worker) Stop() {
	select {
	case <-w.quit:
		return
	default:
	}
	close(w.quit)
	w.wg.Wait()
	w.Pool.Stop()
	w.Engine.Stop()
	w.hasher.Close()
	if w.client != nil {
		w.client.Stop()
	}
}

// Done is closed once the pool session has terminated. The search keeps running on the last job
// until Stop.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

func (w *Worker) report() {
	stats := w.Engine.Snapshot()
	if w.reporter != nil {
		w.reporter.Report(stats)
		return
	}
	log.WithFields(log.Fields{
		"hashes":   stats.Hashes,
		"hashrate": stats.HashRate().String(),
		"accepted": stats.Accepted,
		"sending":  stats.Sending,
	}).Info("Stats")
}

func (w *Worker) monitor() {
	defer w.wg.Done()
	reportTicker := time.NewTicker(ReportInterval)
	statusTicker := time.NewTicker(100 * time.Millisecond)
	defer reportTicker.Stop()
	defer statusTicker.Stop()
	terminated := false
	for {
		select {
		case <-w.quit:
			return
		case <-reportTicker.C:
			if w.Engine.Running() {
				w.report()
			}
		case <-statusTicker.C:
			if !terminated && w.Pool.Status() == stratum.Terminated {
				terminated = true
				log.WithField("job", w.lastJobId()).Warn("Pool session terminated, searching on last job")
				close(w.done)
			}
		}
	}
}

func (w *Worker) lastJobId() string {
	if job := w.Engine.Job(); job != nil {
		return job.JobId
	}
	return ""
}
