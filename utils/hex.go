package utils

import (
	"encoding/hex"

	"github.com/fernandosanchezjr/gocpuminer/fault"
)

// HexToBytes decodes a hex string, most significant nibble first.
func HexToBytes(s string) ([]byte, error) {
	if data, err := hex.DecodeString(s); err != nil {
		return nil, fault.Format("hex decode", err)
	} else {
		return data, nil
	}
}

// BytesToHex always returns lowercase, even length hex.
func BytesToHex(data []byte) string {
	return hex.EncodeToString(data)
}
