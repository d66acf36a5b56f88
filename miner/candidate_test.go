package miner

import (
	"bytes"
	"testing"

	"github.com/fernandosanchezjr/gocpuminer/stratum"
)

func TestCandidate(t *testing.T) {
	var c Candidate
	long := bytes.Repeat([]byte{0x01}, stratum.CandidateSize)
	c.Fill(long, 0x0a0b0c0d)
	blob := bytes.Repeat([]byte{0x02}, 50)
	c.Fill(blob, 0x01020304)
	input := c.Input()
	if len(input) != len(blob) {
		t.Fatal("invalid input length", len(input))
	}
	if !bytes.Equal(input[39:43], []byte{0x01, 0x02, 0x03, 0x04}) {
		t.Fatal("nonce not big endian at offset 39", input[39:43])
	}
	if !bytes.Equal(c.NonceBytes(), input[39:43]) {
		t.Fatal("invalid nonce bytes")
	}
	if !bytes.Equal(input[:39], blob[:39]) || !bytes.Equal(input[43:], blob[43:]) {
		t.Fatal("blob bytes modified")
	}
}
