package messages

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// LogEntry is a worker log line forwarded to the supervisor. Field values are flattened to strings
// so any logged value survives gob encoding.
type LogEntry struct {
	Worker   int
	HostName string
	Data     map[string]string
	Time     time.Time
	Level    log.Level
	Message  string
}

func NewLogEntry(worker int, hostName string, entry *log.Entry) *LogEntry {
	le := &LogEntry{
		Worker:   worker,
		HostName: hostName,
		Data:     make(map[string]string, len(entry.Data)),
		Time:     entry.Time,
		Level:    entry.Level,
		Message:  entry.Message,
	}
	for key, value := range entry.Data {
		if err, ok := value.(error); ok {
			le.Data[key] = err.Error()
		} else {
			le.Data[key] = fmt.Sprint(value)
		}
	}
	return le
}

func (le *LogEntry) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(le); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeLogEntry(raw []byte) (*LogEntry, error) {
	le := &LogEntry{}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(le); err != nil {
		return nil, err
	}
	return le, nil
}

func (le *LogEntry) String() string {
	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "%s [%d] %s: %s", le.Time.Format("15:04:05"), le.Worker, le.Level, le.Message)
	if err, found := le.Data[log.ErrorKey]; found {
		_, _ = fmt.Fprintf(&buf, " (%s)", err)
	}
	return buf.String()
}
