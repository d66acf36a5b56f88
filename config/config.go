package config

import (
	"runtime"

	"github.com/fernandosanchezjr/gocpuminer/hashing"
)

const (
	DefaultAlgorithm = hashing.AlgorithmRandomX
	DefaultAgent     = "gocpuminer/0.1.0"
)

type Config struct {
	Pool          Pool   `yaml:"pool"`
	Algorithm     string `yaml:"algo,omitempty"`
	Workers       int    `yaml:"workers,omitempty"`
	StatusAddress string `yaml:"status,omitempty"`
}

func (c *Config) setDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = DefaultAlgorithm
	}
	if c.Pool.Agent == "" {
		c.Pool.Agent = DefaultAgent
	}
}

// WorkerCount is the configured worker count, or one per CPU when unset.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
