package miner

import (
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fernandosanchezjr/gocpuminer/hashing"
	"github.com/fernandosanchezjr/gocpuminer/messages"
	"github.com/fernandosanchezjr/gocpuminer/stratum"
	"github.com/fernandosanchezjr/gocpuminer/utils"
	log "github.com/sirupsen/logrus"
)

const HashErrorBackoff = 100 * time.Millisecond

type Submitter interface {
	Submit(jobId, nonceHex, resultHex string) error
}

type ShareCounter interface {
	Accepted() uint64
	Sending() uint64
}

// Reporter publishes stats snapshots. It must not block.
type Reporter interface {
	Report(stats *messages.WorkerStats)
}

// Engine searches random nonces of the current job until torn down. A job set while hashing is
// picked up by the next iteration.
type Engine struct {
	id        int
	hasher    hashing.Hasher
	submitter Submitter
	counter   ShareCounter
	reporter  Reporter
	job       atomic.Pointer[stratum.Job]
	running   atomic.Bool
	stopped   atomic.Bool
	hashes    utils.Counter
	started   atomic.Int64
	quit      chan struct{}
	wg        sync.WaitGroup
	mtx       sync.Mutex
}

func NewEngine(hasher hashing.Hasher, submitter Submitter, counter ShareCounter, reporter Reporter) *Engine {
	return &Engine{
		id:        os.Getpid(),
		hasher:    hasher,
		submitter: submitter,
		counter:   counter,
		reporter:  reporter,
	}
}

func (e *Engine) SetJob(job *stratum.Job) {
	e.job.Store(job)
	e.Start()
}

func (e *Engine) Job() *stratum.Job {
	return e.job.Load()
}

// Start runs the search loop unless it is already running, stopped, or there is no job yet.
func (e *Engine) Start() {
	if e.stopped.Load() || e.job.Load() == nil {
		return
	}
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	e.mtx.Lock()
	quit := make(chan struct{})
	e.quit = quit
	e.wg.Add(1)
	e.mtx.Unlock()
	go e.loop(quit)
}

// Stop ends the search loop for good.
func (e *Engine) Stop() {
	e.stopped.Store(true)
	e.mtx.Lock()
	if e.quit != nil {
		close(e.quit)
		e.quit = nil
	}
	e.mtx.Unlock()
	e.wg.Wait()
	e.running.Store(false)
}

func (e *Engine) Running() bool {
	return e.running.Load()
}

func (e *Engine) Hashes() uint64 {
	return e.hashes.Uint64()
}

func (e *Engine) loop(quit chan struct{}) {
	defer e.wg.Done()
	var candidate Candidate
	var failedJob *stratum.Job
	nonces := utils.NewNonceSource()
	e.started.CompareAndSwap(0, time.Now().UnixNano())
	log.WithField("worker", e.id).Info("Search started")
	for {
		select {
		case <-quit:
			log.WithField("hashes", e.hashes.Uint64()).Info("Search stopped")
			return
		default:
		}
		job := e.job.Load()
		candidate.Fill(job.Blob, nonces.Next())
		digest, err := e.hasher.Hash(job.SeedHash, candidate.Input())
		if err != nil {
			if failedJob != job {
				log.WithError(err).WithField("job", job.JobId).Error("Hash failed")
				failedJob = job
			}
			select {
			case <-quit:
			case <-time.After(HashErrorBackoff):
			}
			continue
		}
		e.hashes.Increment()
		if job.Target.Meets(digest) {
			e.found(job, candidate.NonceBytes(), digest)
		}
	}
}

func (e *Engine) found(job *stratum.Job, nonce []byte, digest [hashing.HashSize]byte) {
	nonceHex := utils.BytesToHex(nonce)
	resultHex := utils.BytesToHex(digest[:])
	stats := e.Snapshot()
	if e.reporter != nil {
		e.reporter.Report(stats)
	} else {
		log.WithFields(log.Fields{
			"hashes":   stats.Hashes,
			"hashrate": stats.HashRate().String(),
		}).Info("Stats")
	}
	log.WithFields(log.Fields{
		"job":    job.JobId,
		"nonce":  nonceHex,
		"result": resultHex,
	}).Info("Share found")
	if err := e.submitter.Submit(job.JobId, nonceHex, resultHex); err != nil {
		log.WithError(err).WithField("job", job.JobId).Warn("Share submission failed")
	}
}

// Snapshot reports hashes since the search started and the average rate over that time.
func (e *Engine) Snapshot() *messages.WorkerStats {
	now := time.Now()
	hashes := e.hashes.Uint64()
	stats := &messages.WorkerStats{
		Id:     e.id,
		Hashes: hashes,
		Time:   now,
	}
	if started := e.started.Load(); started != 0 {
		stats.HashesPerSecond = float64(utils.NewHashRate(hashes, now.Sub(time.Unix(0, started))))
	}
	if e.counter != nil {
		stats.Accepted = e.counter.Accepted()
		stats.Sending = e.counter.Sending()
	}
	if job := e.job.Load(); job != nil {
		stats.JobId = job.JobId
	}
	return stats
}
