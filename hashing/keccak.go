package hashing

import (
	"hash"

	"golang.org/x/crypto/sha3"
)

// keccak is legacy Keccak-256, with pre-SHA3 padding. The key is ignored.
type keccak struct {
	state hash.Hash
}

func NewKeccak() Hasher {
	return &keccak{state: sha3.NewLegacyKeccak256()}
}

func (h *keccak) Hash(_ []byte, input []byte) (output [HashSize]byte, err error) {
	h.state.Reset()
	_, _ = h.state.Write(input)
	h.state.Sum(output[:0])
	return
}

func (h *keccak) Close() {

}
