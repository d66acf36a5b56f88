// Package hashing wraps the proof-of-work hash functions a job can ask for.
package hashing

import (
	"errors"
	"fmt"
)

const HashSize = 32

var ErrMissingKey = errors.New("missing hash key")

type Hasher interface {
	Hash(key []byte, input []byte) ([HashSize]byte, error)
	Close()
}

const (
	AlgorithmRandomX = "rx/0"
	AlgorithmKeccak  = "keccak"
)

func Algorithms() []string {
	return []string{AlgorithmRandomX, AlgorithmKeccak}
}

func Supported(algorithm string) bool {
	for _, a := range Algorithms() {
		if a == algorithm {
			return true
		}
	}
	return false
}

func New(algorithm string) (Hasher, error) {
	switch algorithm {
	case AlgorithmRandomX:
		return NewRandomX(), nil
	case AlgorithmKeccak:
		return NewKeccak(), nil
	default:
		return nil, fmt.Errorf("unsupported algorithm %q, expected one of %v", algorithm, Algorithms())
	}
}
