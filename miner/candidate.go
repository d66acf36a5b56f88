package miner

import (
	"github.com/fernandosanchezjr/gocpuminer/stratum"
	"github.com/fernandosanchezjr/gocpuminer/utils"
)

// Candidate is the hash input buffer. Only the first len(blob) bytes are hashed.
type Candidate struct {
	buf    [stratum.CandidateSize]byte
	length int
}

// Fill copies blob in and writes nonce over the nonce field.
func (c *Candidate) Fill(blob []byte, nonce utils.Nonce32) {
	c.length = copy(c.buf[:], blob)
	nonce.Put(c.buf[stratum.NonceOffset : stratum.NonceOffset+utils.NonceSize])
}

func (c *Candidate) Input() []byte {
	return c.buf[:c.length]
}

func (c *Candidate) NonceBytes() []byte {
	return c.buf[stratum.NonceOffset : stratum.NonceOffset+utils.NonceSize]
}
