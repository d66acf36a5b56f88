package utils

import (
	"bytes"
	"github.com/fernandosanchezjr/gocpuminer/fault"
	"testing"
)

func TestHexToBytes(t *testing.T) {
	data, err := HexToBytes("00ff10Ab")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte{0x00, 0xff, 0x10, 0xab}) {
		t.Fatalf("%x", data)
	}
	if data, err = HexToBytes(""); err != nil || len(data) != 0 {
		t.Fatal("empty string should decode to nothing", err)
	}
}

func TestHexToBytesInvalid(t *testing.T) {
	for _, s := range []string{"abc", "zz", "0g", "ff ff"} {
		if _, err := HexToBytes(s); err == nil {
			t.Fatal("expected error for", s)
		} else if !fault.IsType(err, fault.TypeFormat) {
			t.Fatal("expected format error for", s, err)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range []string{"", "00", "DEADBEEF", "0123456789abcdefABCDEF00", "ffffffff"} {
		first, err := HexToBytes(s)
		if err != nil {
			t.Fatal(err)
		}
		encoded := BytesToHex(first)
		if len(encoded)%2 != 0 {
			t.Fatal("odd length output", encoded)
		}
		if encoded != string(bytes.ToLower([]byte(encoded))) {
			t.Fatal("output not lowercase", encoded)
		}
		second, err := HexToBytes(encoded)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, second) {
			t.Fatalf("%x != %x", first, second)
		}
	}
}
