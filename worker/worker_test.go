package worker

import (
	"net"
	"testing"
	"time"

	"github.com/fernandosanchezjr/gocpuminer/config"
	"github.com/fernandosanchezjr/gocpuminer/fault"
	"github.com/fernandosanchezjr/gocpuminer/hashing"
	"github.com/fernandosanchezjr/gocpuminer/messages"
	"github.com/fernandosanchezjr/gocpuminer/stratum"
	"github.com/fernandosanchezjr/gocpuminer/utils"
	"github.com/stretchr/testify/require"
)

func TestWorkerMinesAgainstPool(t *testing.T) {
	server, err := stratum.NewTestPoolServer()
	require.NoError(t, err)
	defer server.Close()
	cfg := &config.Config{
		Pool:      config.Pool{URL: server.URL(), Wallet: "wallet", Pass: "x", Agent: "test/1.0"},
		Algorithm: hashing.AlgorithmKeccak,
	}
	w, err := NewWorker(cfg, "")
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	login, err := server.ReadRequest()
	require.NoError(t, err)
	require.Equal(t, "login", login["method"])
	require.Equal(t, w.Identity, login["id"])
	require.Len(t, w.Identity, 2*utils.IdentitySize)
	require.NoError(t, server.SendLoginResponse())

	submit, err := server.ReadRequest()
	require.NoError(t, err)
	require.Equal(t, "submit", submit["method"])
	params := submit["params"].(map[string]interface{})
	require.Equal(t, "479c7a3f", params["id"])
	require.Equal(t, "a1", params["job_id"])

	blob, err := utils.HexToBytes(stratum.TestBlob)
	require.NoError(t, err)
	nonce, err := utils.HexToBytes(params["nonce"].(string))
	require.NoError(t, err)
	require.Len(t, nonce, utils.NonceSize)
	copy(blob[stratum.NonceOffset:], nonce)
	digest, err := hashing.NewKeccak().Hash(nil, blob)
	require.NoError(t, err)
	require.Equal(t, utils.BytesToHex(digest[:]), params["result"])
	require.True(t, w.Engine.Job().Target.Meets(digest))

	require.NoError(t, server.Send(`{"id":1,"result":{"status":"OK"}}`+"\n"))
	require.Eventually(t, func() bool {
		return w.Pool.Accepted() == 1
	}, 5*time.Second, 10*time.Millisecond)
	require.LessOrEqual(t, w.Pool.Accepted(), w.Pool.Sending())

	require.NoError(t, server.CloseClient())
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not notice the closed session")
	}
	require.Equal(t, stratum.Terminated, w.Pool.Status())
	require.True(t, w.Engine.Running())
	hashes := w.Engine.Hashes()
	require.Eventually(t, func() bool {
		return w.Engine.Hashes() > hashes
	}, 5*time.Second, 10*time.Millisecond)
	require.True(t, w.Engine.Running())
	require.Equal(t, "a1", w.Engine.Job().JobId)
}

func TestWorkerWithoutPool(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	url := l.Addr().String()
	require.NoError(t, l.Close())
	cfg := &config.Config{
		Pool:      config.Pool{URL: url, Wallet: "wallet"},
		Algorithm: hashing.AlgorithmKeccak,
	}
	w, err := NewWorker(cfg, "")
	require.NoError(t, err)
	err = w.Start()
	require.True(t, fault.IsType(err, fault.TypeTransport))
	defer w.Stop()
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not notice the failed session")
	}
	require.False(t, w.Engine.Running())
}

type recordingSender struct {
	calls []string
	raw   [][]byte
}

func (rs *recordingSender) Send(service, funcName string, request interface{}) error {
	rs.calls = append(rs.calls, service+"."+funcName)
	rs.raw = append(rs.raw, request.([]byte))
	return nil
}

func TestStatsReporter(t *testing.T) {
	sender := &recordingSender{}
	NewStatsReporter(sender).Report(&messages.WorkerStats{Id: 3, Hashes: 9})
	require.Equal(t, []string{"Stats.Report"}, sender.calls)
	stats, err := messages.DecodeWorkerStats(sender.raw[0])
	require.NoError(t, err)
	require.Equal(t, 3, stats.Id)
	require.Equal(t, uint64(9), stats.Hashes)
}

func TestUnsupportedAlgorithm(t *testing.T) {
	_, err := NewWorker(&config.Config{Algorithm: "cn/r"}, "")
	require.Error(t, err)
}
