package stratum

import (
	"encoding/binary"
	"math"

	"github.com/fernandosanchezjr/gocpuminer/utils"
	"github.com/holiman/uint256"
)

// TargetSize is the width short pool targets are widened to.
const TargetSize = 8

// Target is a little-endian unsigned integer a digest has to stay below.
type Target []byte

// BuildTarget widens short targets to 8 bytes, keeping the raw bytes at the most-significant end and
// filling the rest with 0xff. Longer targets are kept as they are.
func BuildTarget(raw []byte) Target {
	if len(raw) <= TargetSize {
		t := make(Target, TargetSize)
		padding := TargetSize - len(raw)
		for i := 0; i < padding; i++ {
			t[i] = 0xff
		}
		copy(t[padding:], raw)
		return t
	}
	t := make(Target, len(raw))
	copy(t, raw)
	return t
}

func TargetFromHex(s string) (Target, error) {
	raw, err := utils.HexToBytes(s)
	if err != nil {
		return nil, err
	}
	return BuildTarget(raw), nil
}

// MeetsTarget compares the top len(target) bytes of digest against target, most-significant byte
// first. A digest equal to the target does not meet it.
func MeetsTarget(digest [32]byte, target Target) bool {
	for i := 0; i < len(target) && i < len(digest); i++ {
		d := digest[len(digest)-1-i]
		t := target[len(target)-1-i]
		if d > t {
			return false
		}
		if d < t {
			return true
		}
	}
	return false
}

func (t Target) Meets(digest [32]byte) bool {
	return MeetsTarget(digest, t)
}

// Difficulty is the expected number of hashes per hit.
func (t Target) Difficulty() utils.Difficulty {
	if len(t) == TargetSize {
		value := binary.LittleEndian.Uint64(t)
		if value == 0 {
			return math.MaxUint64
		}
		return utils.Difficulty(math.MaxUint64 / value)
	}
	be := make([]byte, len(t))
	for i := range t {
		be[len(t)-1-i] = t[i]
	}
	value := new(uint256.Int).SetBytes(be)
	if value.IsZero() {
		return math.MaxUint64
	}
	limit := new(uint256.Int).Not(uint256.NewInt(0))
	if len(t) < 32 {
		limit.Rsh(limit, uint(256-8*len(t)))
	}
	quotient := new(uint256.Int).Div(limit, value)
	if !quotient.IsUint64() {
		return math.MaxUint64
	}
	return utils.Difficulty(quotient.Uint64())
}

func (t Target) String() string {
	return utils.BytesToHex(t)
}
