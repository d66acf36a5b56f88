package supervisor

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/fernandosanchezjr/gocpuminer/messages"
	"github.com/goccy/go-json"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
)

type WorkerStatus struct {
	Id       int     `json:"id"`
	Hashes   uint64  `json:"hashes"`
	HashRate float64 `json:"hashrate"`
	Accepted uint64  `json:"accepted"`
	Sending  uint64  `json:"sending"`
	JobId    string  `json:"job_id,omitempty"`
}

type Status struct {
	HashRate float64        `json:"hashrate"`
	Hashes   uint64         `json:"hashes"`
	Accepted uint64         `json:"accepted"`
	Sending  uint64         `json:"sending"`
	Workers  []WorkerStatus `json:"workers"`
}

func newWorkerStatus(stats messages.WorkerStats) WorkerStatus {
	return WorkerStatus{
		Id:       stats.Id,
		Hashes:   stats.Hashes,
		HashRate: stats.HashesPerSecond,
		Accepted: stats.Accepted,
		Sending:  stats.Sending,
		JobId:    stats.JobId,
	}
}

// StatusService serves the collector over HTTP.
type StatusService struct {
	collector *Collector
	server    *http.Server
	listener  net.Listener
}

func NewStatusService(collector *Collector) *StatusService {
	return &StatusService{collector: collector}
}

func (ss *StatusService) Router() http.Handler {
	router := httprouter.New()
	router.GET("/stats", ss.GetStats)
	return router
}

func (ss *StatusService) Start(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	ss.listener = listener
	ss.server = &http.Server{Handler: ss.Router(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := ss.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Status server failed")
		}
	}()
	log.WithField("address", listener.Addr().String()).Info("Status server started")
	return nil
}

func (ss *StatusService) Addr() string {
	if ss.listener == nil {
		return ""
	}
	return ss.listener.Addr().String()
}

func (ss *StatusService) Stop() {
	if ss.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := ss.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("Status server shutdown")
	}
}

func (ss *StatusService) GetStats(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	totals := ss.collector.Totals()
	status := &Status{
		HashRate: float64(totals.HashRate),
		Hashes:   totals.Hashes,
		Accepted: totals.Accepted,
		Sending:  totals.Sending,
		Workers:  []WorkerStatus{},
	}
	for _, stats := range ss.collector.Workers() {
		status.Workers = append(status.Workers, newWorkerStatus(stats))
	}
	data, err := json.Marshal(status)
	if err != nil {
		log.WithError(err).Error("Error encoding status")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}
