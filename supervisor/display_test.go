package supervisor

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fernandosanchezjr/gocpuminer/messages"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestDisplayRender(t *testing.T) {
	c := NewCollector()
	c.Update(&messages.WorkerStats{Id: 1, Hashes: 1500, HashesPerSecond: 1500, Accepted: 3, Sending: 4})
	d := NewDisplay(c, nil)
	out := d.Render()
	require.Contains(t, out, "Workers: 1\n")
	require.Contains(t, out, "Hashrate: 1.5 kH/s\n")
	require.Contains(t, out, "Total hashes: 1500\n")
	require.Contains(t, out, "Shares: 3 accepted / 4 sent\n")

	for i := 0; i < RecentLogLines+2; i++ {
		d.AddLogEntry(&messages.LogEntry{Worker: 7, Level: log.WarnLevel, Time: time.Now(),
			Message: fmt.Sprintf("message %d", i)})
	}
	out = d.Render()
	require.NotContains(t, out, "message 1\n")
	require.Contains(t, out, "message 2\n")
	require.Contains(t, out, fmt.Sprintf("message %d\n", RecentLogLines+1))
	require.True(t, strings.Index(out, "message 2\n") < strings.Index(out, "message 11\n"))
}

type syncBuffer struct {
	writes chan string
}

func (sb *syncBuffer) Write(p []byte) (int, error) {
	select {
	case sb.writes <- string(p):
	default:
	}
	return len(p), nil
}

func TestDisplayRefresh(t *testing.T) {
	out := &syncBuffer{writes: make(chan string, 1)}
	d := NewDisplay(NewCollector(), out)
	require.NoError(t, d.Start())
	defer d.Stop()
	select {
	case s := <-out.writes:
		require.True(t, strings.HasPrefix(s, clearScreen))
		require.Contains(t, s, "Workers: 0")
	case <-time.After(3 * time.Second):
		t.Fatal("display not refreshed")
	}
}
