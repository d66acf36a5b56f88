package protocol

import (
	"errors"
	"github.com/epiclabs-io/elastic"
)

// JobParams is a job descriptor as sent by the pool, before any decoding.
type JobParams struct {
	JobId    string
	Blob     string
	Target   string
	SeedHash string
	Algo     string
	Height   uint64
}

func setString(dst *string, m map[string]interface{}, key string, required bool) error {
	value, found := m[key]
	if !found || value == nil {
		if required {
			return errors.New("missing " + key)
		}
		return nil
	}
	return elastic.Set(dst, value)
}

func NewJobParams(raw interface{}) (*JobParams, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.New("job is not an object")
	}
	jp := &JobParams{}
	if err := setString(&jp.JobId, m, "job_id", true); err != nil {
		return nil, err
	}
	if err := setString(&jp.Blob, m, "blob", true); err != nil {
		return nil, err
	}
	if err := setString(&jp.Target, m, "target", false); err != nil {
		return nil, err
	}
	if err := setString(&jp.SeedHash, m, "seed_hash", false); err != nil {
		return nil, err
	}
	if err := setString(&jp.Algo, m, "algo", false); err != nil {
		return nil, err
	}
	if height, found := m["height"]; found && height != nil {
		if err := elastic.Set(&jp.Height, height); err != nil {
			return nil, err
		}
	}
	return jp, nil
}
