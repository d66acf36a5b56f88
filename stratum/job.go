package stratum

import (
	"fmt"

	"github.com/fernandosanchezjr/gocpuminer/fault"
	"github.com/fernandosanchezjr/gocpuminer/stratum/protocol"
	"github.com/fernandosanchezjr/gocpuminer/utils"
)

const (
	CandidateSize = 84
	NonceOffset   = 39
	MinBlobSize   = NonceOffset + utils.NonceSize
	MaxTargetSize = 32
)

// Job is never modified once parsed; a newer job replaces it as a whole.
type Job struct {
	JobId     string
	Blob      []byte
	TargetRaw string
	Target    Target
	SeedHash  []byte
	Height    uint64
	Algo      string
}

func ParseJob(params *protocol.JobParams) (*Job, error) {
	if params == nil {
		return nil, fault.Protocolf("job", "missing job")
	}
	if params.JobId == "" {
		return nil, fault.Protocolf("job", "missing job_id")
	}
	blob, err := utils.HexToBytes(params.Blob)
	if err != nil {
		return nil, fault.Protocol("job blob", err)
	}
	if len(blob) < MinBlobSize || len(blob) > CandidateSize {
		return nil, fault.Protocolf("job blob", "invalid blob length %d", len(blob))
	}
	if params.Target == "" {
		return nil, fault.Protocolf("job", "missing target")
	}
	rawTarget, err := utils.HexToBytes(params.Target)
	if err != nil {
		return nil, fault.Protocol("job target", err)
	}
	if len(rawTarget) > MaxTargetSize {
		return nil, fault.Protocolf("job target", "invalid target length %d", len(rawTarget))
	}
	j := &Job{
		JobId:     params.JobId,
		Blob:      blob,
		TargetRaw: params.Target,
		Target:    BuildTarget(rawTarget),
		Height:    params.Height,
		Algo:      params.Algo,
	}
	if params.SeedHash != "" {
		if j.SeedHash, err = utils.HexToBytes(params.SeedHash); err != nil {
			return nil, fault.Protocol("job seed_hash", err)
		}
	}
	return j, nil
}

// NewJob decodes the params of a job push or the job embedded in a login response.
func NewJob(raw interface{}) (*Job, error) {
	params, err := protocol.NewJobParams(raw)
	if err != nil {
		return nil, fault.Protocol("job", err)
	}
	return ParseJob(params)
}

func (j *Job) Difficulty() utils.Difficulty {
	return j.Target.Difficulty()
}

func (j *Job) String() string {
	if j.Height > 0 {
		return fmt.Sprintf("%s (height %d, difficulty %s)", j.JobId, j.Height, j.Difficulty())
	}
	return fmt.Sprintf("%s (difficulty %s)", j.JobId, j.Difficulty())
}
