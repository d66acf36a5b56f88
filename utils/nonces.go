package utils

import (
	"encoding/binary"
	"fmt"
)

const NonceSize = 4

type Nonce32 uint32

func (n Nonce32) String() string {
	return fmt.Sprintf("%08x", uint32(n))
}

// Put writes the nonce big endian, matching its String form.
func (n Nonce32) Put(dst []byte) {
	binary.BigEndian.PutUint32(dst, uint32(n))
}
