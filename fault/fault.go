// Package fault classifies the errors a miner can run into. None of them stop hashing: callers log
// them and carry on.
package fault

import (
	"errors"
	"fmt"
)

type Type string

const (
	// TypeFormat is malformed hex or JSON.
	TypeFormat Type = "format"
	// TypeProtocol is well-formed JSON missing required fields.
	TypeProtocol Type = "protocol"
	// TypePool is an error object reported by the pool.
	TypePool Type = "pool"
	// TypeTransport is a connect, read or write failure.
	TypeTransport Type = "transport"
)

type Error struct {
	Type Type
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("%s error in %s: %v", e.Type, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(t Type, op string, err error) *Error {
	if err == nil {
		err = errors.New("unknown error")
	}
	return &Error{Type: t, Op: op, Err: err}
}

func Format(op string, err error) *Error {
	return newError(TypeFormat, op, err)
}

func Protocol(op string, err error) *Error {
	return newError(TypeProtocol, op, err)
}

func Pool(op string, err error) *Error {
	return newError(TypePool, op, err)
}

func Transport(op string, err error) *Error {
	return newError(TypeTransport, op, err)
}

// Protocolf builds a protocol error from a message.
func Protocolf(op string, format string, args ...interface{}) *Error {
	return Protocol(op, fmt.Errorf(format, args...))
}

func IsType(err error, t Type) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Type == t
	}
	return false
}
