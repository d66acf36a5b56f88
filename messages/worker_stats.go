package messages

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/fernandosanchezjr/gocpuminer/utils"
)

// WorkerStats is a snapshot of one worker process. Id is the worker's process id.
type WorkerStats struct {
	Id              int
	Hashes          uint64
	HashesPerSecond float64
	Accepted        uint64
	Sending         uint64
	JobId           string
	Time            time.Time
}

func (ws *WorkerStats) HashRate() utils.HashRate {
	return utils.HashRate(ws.HashesPerSecond)
}

func (ws *WorkerStats) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ws); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeWorkerStats(raw []byte) (*WorkerStats, error) {
	ws := &WorkerStats{}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(ws); err != nil {
		return nil, err
	}
	return ws, nil
}
