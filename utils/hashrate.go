package utils

import (
	"github.com/dustin/go-humanize"
	"strconv"
	"time"
)

const MaxRawHashRate = 1000

type HashRate float64

// NewHashRate averages hashes over elapsed, returning zero before any time has passed.
func NewHashRate(hashes uint64, elapsed time.Duration) HashRate {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return HashRate(float64(hashes) / seconds)
}

func (h HashRate) String() string {
	if h < MaxRawHashRate {
		return strconv.FormatFloat(float64(h), 'f', 2, 64) + " H/s"
	} else {
		return humanize.SIWithDigits(float64(h), 2, "H/s")
	}
}
