package hashing

import (
	"encoding/hex"
	"testing"
)

func TestKeccak(t *testing.T) {
	h, err := New(AlgorithmKeccak)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	for i := 0; i < 2; i++ {
		digest, err := h.Hash(nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if s := hex.EncodeToString(digest[:]); s != "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470" {
			t.Fatal("invalid digest", s)
		}
	}
}

func TestRandomXMissingKey(t *testing.T) {
	h := NewRandomX()
	defer h.Close()
	if _, err := h.Hash(nil, []byte("This is a test")); err != ErrMissingKey {
		t.Fatal("expected missing key error, got", err)
	}
}

func TestRandomX(t *testing.T) {
	if testing.Short() {
		t.Skip("RandomX cache initialization is slow")
	}
	h, err := New(AlgorithmRandomX)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	digest, err := h.Hash([]byte("test key 000"), []byte("This is a test"))
	if err != nil {
		t.Fatal(err)
	}
	if s := hex.EncodeToString(digest[:]); s != "639183aae1bf4c9a35884cb46b09cad9175f04efd7684e7262a0ac1c2f0b4e3f" {
		t.Fatal("invalid digest", s)
	}
}

func TestUnsupportedAlgorithm(t *testing.T) {
	if _, err := New("cn/r"); err == nil {
		t.Fatal("unsupported algorithm accepted")
	}
}

func TestSupportedAlgorithms(t *testing.T) {
	for _, algorithm := range Algorithms() {
		if !Supported(algorithm) {
			t.Fatal("listed algorithm not supported", algorithm)
		}
	}
	if Supported("cn/r") {
		t.Fatal("cn/r reported as supported")
	}
}
