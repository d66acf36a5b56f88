package stratum

import (
	"bufio"
	"net"
	"sync"

	"github.com/fernandosanchezjr/gocpuminer/stratum/protocol"
	"github.com/goccy/go-json"
)

const TestBlob = "1010030a11181f262d343b424950575e656c737a81888f969da4abb2b9c0c7ced5dce3eaf1f8ff060d141b2229" +
	"30373e454c535a61686f767d848b9299a0a7aeb5bcc3cad1d8dfe6edf4fb02"

var loginResponseExample = `{"id":1,"jsonrpc":"2.0","error":null,"result":{"id":"479c7a3f","status":"OK",` +
	`"job":{"job_id":"a1","blob":"` + TestBlob + `","target":"b88d0600","seed_hash":` +
	`"c3a5b7e5ab5b7d4b7ed7c1a7b1a5f3e4d1c3b5a7f9e1d3c5b7a9f1e3d5c7b9a1","height":2800000,"algo":"rx/0"}}}`

var jobExample = `{"jsonrpc":"2.0","method":"job","params":{"job_id":"a2","blob":"` + TestBlob +
	`","target":"ffffffff"}}`

func UnmarshalTestJob() (*Job, error) {
	reply := &protocol.Reply{}
	if err := json.Unmarshal([]byte(loginResponseExample), reply); err != nil {
		return nil, err
	}
	lr, err := protocol.NewLoginResponse(reply)
	if err != nil {
		return nil, err
	}
	return ParseJob(lr.Job)
}

// NewTestJob builds a job around blob with a target every digest meets except an all 0xff one.
func NewTestJob(jobId string, blob string) (*Job, error) {
	return ParseJob(&protocol.JobParams{JobId: jobId, Blob: blob, Target: "ffffffff"})
}

// TestPoolServer is an in-process pool accepting a single miner connection.
type TestPoolServer struct {
	listener net.Listener
	conn     net.Conn
	reader   *bufio.Reader
	ready    chan struct{}
	mtx      sync.Mutex
}

func NewTestPoolServer() (*TestPoolServer, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	s := &TestPoolServer{listener: l, ready: make(chan struct{})}
	go s.accept()
	return s, nil
}

func (s *TestPoolServer) accept() {
	conn, err := s.listener.Accept()
	if err != nil {
		return
	}
	s.mtx.Lock()
	s.conn = conn
	s.reader = bufio.NewReader(conn)
	s.mtx.Unlock()
	close(s.ready)
}

func (s *TestPoolServer) URL() string {
	return s.listener.Addr().String()
}

// ReadRequest blocks until the miner sends a complete request.
func (s *TestPoolServer) ReadRequest() (map[string]interface{}, error) {
	<-s.ready
	line, err := s.reader.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	request := make(map[string]interface{})
	if err := json.Unmarshal(line, &request); err != nil {
		return nil, err
	}
	return request, nil
}

// Send writes data unframed, so tests control where messages are split.
func (s *TestPoolServer) Send(data string) error {
	<-s.ready
	s.mtx.Lock()
	defer s.mtx.Unlock()
	_, err := s.conn.Write([]byte(data))
	return err
}

func (s *TestPoolServer) SendLoginResponse() error {
	return s.Send(loginResponseExample + "\n")
}

func (s *TestPoolServer) SendJob() error {
	return s.Send(jobExample + "\n")
}

func (s *TestPoolServer) CloseClient() error {
	<-s.ready
	return s.conn.Close()
}

func (s *TestPoolServer) Close() {
	_ = s.listener.Close()
	s.mtx.Lock()
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.mtx.Unlock()
}
