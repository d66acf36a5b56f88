package stratum

import (
	"bytes"
	"math"
	"testing"
)

func TestBuildTarget(t *testing.T) {
	target, err := TargetFromHex("ffffffff")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(target, bytes.Repeat([]byte{0xff}, 8)) {
		t.Fatal("invalid target", target)
	}
	target = BuildTarget([]byte{0x01, 0x02})
	if !bytes.Equal(target, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01, 0x02}) {
		t.Fatal("invalid target", target)
	}
	target = BuildTarget(nil)
	if len(target) != TargetSize {
		t.Fatal("invalid empty target length", len(target))
	}
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	target = BuildTarget(raw)
	if !bytes.Equal(target, raw) {
		t.Fatal("long target modified", target)
	}
	raw[0] = 0xaa
	if target[0] != 1 {
		t.Fatal("target shares memory with raw bytes")
	}
	if _, err := TargetFromHex("fff"); err == nil {
		t.Fatal("odd length target accepted")
	}
}

func digestWithWindow(window []byte) [32]byte {
	var digest [32]byte
	copy(digest[32-len(window):], window)
	return digest
}

func TestMeetsTarget(t *testing.T) {
	target := Target{0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00}
	digest := digestWithWindow([]byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00})
	if !MeetsTarget(digest, target) {
		t.Fatal("smaller digest rejected")
	}
	digest = digestWithWindow([]byte{0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00})
	if MeetsTarget(digest, target) {
		t.Fatal("larger digest accepted")
	}
	digest = digestWithWindow(target)
	if target.Meets(digest) {
		t.Fatal("equal digest accepted")
	}
	// The most significant byte decides even when lower bytes are larger.
	digest = digestWithWindow([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00})
	if !MeetsTarget(digest, Target{0, 0, 0, 0, 0, 0, 0, 0x01}) {
		t.Fatal("digest compared from the wrong end")
	}
}

func TestMeetsMaximalTarget(t *testing.T) {
	target := BuildTarget([]byte{0xff, 0xff, 0xff, 0xff})
	if MeetsTarget(digestWithWindow(bytes.Repeat([]byte{0xff}, 8)), target) {
		t.Fatal("all 0xff digest accepted")
	}
	var digest [32]byte
	if !MeetsTarget(digest, target) {
		t.Fatal("zero digest rejected")
	}
	digest = digestWithWindow([]byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	if !MeetsTarget(digest, target) {
		t.Fatal("digest below maximal target rejected")
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		target     Target
		difficulty uint64
	}{
		{BuildTarget([]byte{0xff, 0xff, 0xff, 0xff}), 1},
		{BuildTarget([]byte{0xb8, 0x8d, 0x06, 0x00}), 9999},
		{Target(make([]byte, 8)), math.MaxUint64},
		{append(make(Target, 15), 0x01), 255},
		{append(make(Target, 31), 0x80), 1},
	}
	for _, test := range tests {
		if d := uint64(test.target.Difficulty()); d != test.difficulty {
			t.Fatal("invalid difficulty for", test.target, "expected", test.difficulty, "got", d)
		}
	}
}
