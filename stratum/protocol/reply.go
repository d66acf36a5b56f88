package protocol

import (
	"errors"
	"fmt"
	"github.com/epiclabs-io/elastic"
)

// Reply is any message received from the pool: a response to a request or a pushed method call.
type Reply struct {
	Id         interface{} `json:"id"`
	MethodName string      `json:"method"`
	Params     interface{} `json:"params"`
	Result     interface{} `json:"result"`
	Error      interface{} `json:"error"`
}

type ReplyError struct {
	Code    int
	Message string
}

func (e *ReplyError) Error() string {
	if e.Code == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// ResultMap returns the result object, or nil when the reply carries none.
func (r *Reply) ResultMap() map[string]interface{} {
	if result, ok := r.Result.(map[string]interface{}); ok {
		return result
	}
	return nil
}

func (r *Reply) HasError() error {
	switch e := r.Error.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		re := &ReplyError{Message: "unknown error"}
		if message, found := e["message"]; found {
			if err := elastic.Set(&re.Message, message); err != nil {
				return err
			}
		}
		if code, found := e["code"]; found {
			_ = elastic.Set(&re.Code, code)
		}
		return re
	case string:
		return errors.New(e)
	default:
		return fmt.Errorf("unknown error: %v", e)
	}
}
