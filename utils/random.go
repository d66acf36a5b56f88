package utils

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"

	"gonum.org/v1/gonum/mathext/prng"
)

const IdentitySize = 12

func RandomUint64() uint64 {
	var data [8]byte
	if _, err := rand.Read(data[:]); err != nil {
		panic(err)
	}
	return binary.BigEndian.Uint64(data[:])
}

// NewIdentity returns a random session token, unique per process.
func NewIdentity() string {
	var data [IdentitySize]byte
	if _, err := rand.Read(data[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(data[:])
}

// NonceSource draws uniformly distributed nonces. It is not safe for concurrent use.
type NonceSource struct {
	rng *prng.Xoshiro256starstar
}

func NewNonceSource() *NonceSource {
	return &NonceSource{rng: prng.NewXoshiro256starstar(RandomUint64())}
}

func (ns *NonceSource) Next() Nonce32 {
	return Nonce32(ns.rng.Uint64() >> 32)
}
