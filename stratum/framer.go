package stratum

import (
	"bytes"
	"errors"

	"github.com/fernandosanchezjr/gocpuminer/fault"
)

const MaxMessageSize = 64 * 1024

// Framer splits a byte stream into newline delimited messages. It is not safe for concurrent use.
type Framer struct {
	pending []byte
}

// Feed returns every complete, non-empty line found so far and keeps the trailing partial line.
// A partial line growing past MaxMessageSize is discarded.
func (f *Framer) Feed(data []byte) ([][]byte, error) {
	f.pending = append(f.pending, data...)
	var lines [][]byte
	for {
		pos := bytes.IndexByte(f.pending, '\n')
		if pos < 0 {
			break
		}
		line := bytes.TrimSpace(f.pending[:pos])
		if len(line) > 0 {
			lines = append(lines, append([]byte(nil), line...))
		}
		f.pending = f.pending[pos+1:]
	}
	if len(f.pending) > MaxMessageSize {
		f.pending = nil
		return lines, fault.Format("framing", errors.New("message too long"))
	}
	if len(f.pending) == 0 {
		f.pending = nil
	}
	return lines, nil
}

func (f *Framer) Pending() int {
	return len(f.pending)
}

func (f *Framer) Reset() {
	f.pending = nil
}
