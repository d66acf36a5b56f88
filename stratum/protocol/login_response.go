package protocol

import (
	"errors"
	"github.com/epiclabs-io/elastic"
)

type LoginResponse struct {
	Id     string
	Status string
	Job    *JobParams
}

// IsLoginResponse reports whether the reply carries an authentication id.
func IsLoginResponse(reply *Reply) bool {
	result := reply.ResultMap()
	if result == nil {
		return false
	}
	id, found := result["id"]
	return found && id != nil && id != ""
}

// NewLoginResponse decodes the worker id and, when embedded, the first job. A malformed job is
// returned as an error alongside the decoded id.
func NewLoginResponse(reply *Reply) (*LoginResponse, error) {
	result := reply.ResultMap()
	if result == nil {
		return nil, errors.New("login response without result")
	}
	lr := &LoginResponse{}
	if err := setString(&lr.Id, result, "id", true); err != nil {
		return nil, err
	}
	if err := setString(&lr.Status, result, "status", false); err != nil {
		return nil, err
	}
	if rawJob, found := result["job"]; found && rawJob != nil {
		job, err := NewJobParams(rawJob)
		if err != nil {
			return lr, err
		}
		lr.Job = job
	}
	return lr, nil
}

// IsStatusOK reports whether the reply is a {"status":"OK"} acknowledgement.
func IsStatusOK(reply *Reply) bool {
	result := reply.ResultMap()
	if result == nil {
		return false
	}
	raw, found := result["status"]
	if !found || raw == nil {
		return false
	}
	var status string
	if err := elastic.Set(&status, raw); err != nil {
		return false
	}
	return status == "OK"
}
