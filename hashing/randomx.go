package hashing

import (
	"bytes"
	"sync"

	"git.gammaspectra.live/P2Pool/go-randomx"
)

// randomX hashes in light mode: only the cache is built, re-initialized whenever the key changes.
type randomX struct {
	cache *randomx.Randomx_Cache
	lock  sync.Mutex
	key   []byte
	vm    *randomx.VM
}

func NewRandomX() Hasher {
	return &randomX{
		cache: randomx.Randomx_alloc_cache(0),
	}
}

func (h *randomX) Hash(key []byte, input []byte) (output [HashSize]byte, err error) {
	if len(key) == 0 {
		return output, ErrMissingKey
	}
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.key == nil || !bytes.Equal(h.key, key) {
		h.key = make([]byte, len(key))
		copy(h.key, key)

		h.cache.Randomx_init_cache(h.key)

		gen := randomx.Init_Blake2Generator(h.key, 0)
		for i := 0; i < 8; i++ {
			h.cache.Programs[i] = randomx.Build_SuperScalar_Program(gen)
		}
		h.vm = h.cache.VM_Initialize()
	}

	outputBuf := make([]byte, HashSize)
	h.vm.CalculateHash(input, outputBuf)
	copy(output[:], outputBuf)
	return
}

func (h *randomX) Close() {

}
