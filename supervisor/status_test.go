package supervisor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fernandosanchezjr/gocpuminer/messages"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestStatusService(t *testing.T) {
	c := NewCollector()
	ss := NewStatusService(c)

	recorder := httptest.NewRecorder()
	ss.Router().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"hashrate":0,"hashes":0,"accepted":0,"sending":0,"workers":[]}`, recorder.Body.String())

	c.Update(&messages.WorkerStats{Id: 5, Hashes: 10, HashesPerSecond: 2.5, Accepted: 1, Sending: 1, JobId: "j1"})
	recorder = httptest.NewRecorder()
	ss.Router().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	var status Status
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &status))
	require.Equal(t, uint64(10), status.Hashes)
	require.Equal(t, 2.5, status.HashRate)
	require.Len(t, status.Workers, 1)
	require.Equal(t, WorkerStatus{Id: 5, Hashes: 10, HashRate: 2.5, Accepted: 1, Sending: 1, JobId: "j1"}, status.Workers[0])

	recorder = httptest.NewRecorder()
	ss.Router().ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/stats", nil))
	require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestStatusServiceListen(t *testing.T) {
	ss := NewStatusService(NewCollector())
	require.NoError(t, ss.Start("127.0.0.1:0"))
	defer ss.Stop()
	resp, err := http.Get("http://" + ss.Addr() + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
