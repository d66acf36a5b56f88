package stratum

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/fernandosanchezjr/gocpuminer/config"
	"github.com/fernandosanchezjr/gocpuminer/fault"
	"github.com/fernandosanchezjr/gocpuminer/stratum/protocol"
	"github.com/fernandosanchezjr/gocpuminer/utils"
	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

type PoolState int

const (
	Disconnected PoolState = iota
	Connecting
	Authenticating
	Working
	Terminated
)

func (ps PoolState) String() string {
	switch ps {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Authenticating:
		return "authenticating"
	case Working:
		return "working"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("unknown(%d)", int(ps))
	}
}

var ErrNotWritable = errors.New("pool connection not writable")

// JobSink receives every valid job the pool sends.
type JobSink interface {
	SetJob(job *Job)
}

// Pool is a single session with a single pool. It does not reconnect: once Terminated it stays so.
type Pool struct {
	config     config.Pool
	algorithm  string
	identity   string
	jobs       JobSink
	conn       *Connection
	status     PoolState
	workerId   string
	framer     Framer
	accepted   utils.Counter
	sending    utils.Counter
	quit       chan struct{}
	wg         sync.WaitGroup
	mtx        sync.Mutex
	OnAccepted func()
}

func NewPool(config config.Pool, algorithm, identity string, jobs JobSink) *Pool {
	return &Pool{
		config:    config,
		algorithm: algorithm,
		identity:  identity,
		jobs:      jobs,
		status:    Disconnected,
	}
}

func (p *Pool) String() string {
	return fmt.Sprint(p.config.Wallet, "@", p.config.URL)
}

// Start connects, logs in and starts reading. It only has an effect on a fresh session.
func (p *Pool) Start() error {
	p.mtx.Lock()
	if p.status != Disconnected {
		p.mtx.Unlock()
		return nil
	}
	p.status = Connecting
	p.mtx.Unlock()

	conn, err := NewConnection(p.config.URL)
	if err != nil {
		err = fault.Transport("connect", err)
		p.terminate(err)
		return err
	}

	p.mtx.Lock()
	if p.status != Connecting {
		p.mtx.Unlock()
		_ = conn.Close()
		return fault.Transport("connect", ErrNotWritable)
	}
	p.conn = conn
	log.WithFields(log.Fields{
		"pool":    p.config.URL,
		"address": conn.RemoteAddr(),
	}).Info("Connected")
	login := protocol.NewLogin(p.config.Wallet, p.config.Pass, p.config.Agent, p.algorithm)
	if err = conn.Call(p.identity, login); err != nil {
		p.mtx.Unlock()
		err = fault.Transport("login", err)
		p.terminate(err)
		return err
	}
	p.status = Authenticating
	p.quit = make(chan struct{})
	p.wg.Add(1)
	go p.loop(conn, p.quit)
	p.mtx.Unlock()
	return nil
}

func (p *Pool) Stop() {
	p.mtx.Lock()
	if p.quit != nil {
		close(p.quit)
		p.quit = nil
	}
	p.release()
	p.status = Terminated
	p.mtx.Unlock()
	p.wg.Wait()
}

func (p *Pool) loop(conn *Connection, quit chan struct{}) {
	defer p.wg.Done()
	buf := make([]byte, ReadBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			p.HandleData(buf[:n])
		}
		if err != nil {
			select {
			case <-quit:
				return
			default:
			}
			if errors.Is(err, io.EOF) {
				err = errors.New("connection closed by pool")
			}
			p.terminate(fault.Transport("read", err))
			return
		}
	}
}

// release must be called with mtx held.
func (p *Pool) release() {
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			log.WithError(err).Debugln("Pool", p, "close error")
		}
		p.conn = nil
	}
}

func (p *Pool) terminate(err error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	if p.status == Terminated {
		return
	}
	log.WithError(err).WithField("pool", p.config.URL).Error("Pool session terminated")
	p.release()
	p.status = Terminated
}

// HandleData frames raw socket data and dispatches every complete message.
func (p *Pool) HandleData(data []byte) {
	lines, err := p.framer.Feed(data)
	for _, line := range lines {
		p.HandleMessage(line)
	}
	if err != nil {
		log.WithError(err).Warnln("Pool", p, "dropped data")
	}
}

func (p *Pool) HandleMessage(line []byte) {
	reply := &protocol.Reply{}
	if err := json.Unmarshal(line, reply); err != nil {
		log.WithError(fault.Format("message", err)).Warnln("Pool", p, "received malformed message")
		return
	}
	switch {
	case protocol.IsLoginResponse(reply):
		p.handleLogin(reply)
	case protocol.IsStatusOK(reply):
		p.handleAccepted()
	case reply.MethodName == "job":
		p.installJob(reply.Params)
	case reply.Error != nil:
		p.handlePoolError(reply)
	default:
		log.Debugln("Pool", p, "received unknown message:", string(line))
	}
}

func (p *Pool) handleLogin(reply *protocol.Reply) {
	lr, err := protocol.NewLoginResponse(reply)
	if lr == nil {
		log.WithError(fault.Protocol("login", err)).Warnln("Pool", p, "login response ignored")
		return
	}
	p.mtx.Lock()
	p.workerId = lr.Id
	if p.status == Authenticating {
		p.status = Working
	}
	p.mtx.Unlock()
	log.WithField("id", lr.Id).Infoln("Pool", p, "authenticated")
	if err != nil {
		log.WithError(fault.Protocol("login job", err)).Warnln("Pool", p, "embedded job ignored")
		return
	}
	if lr.Job != nil {
		p.setJob(ParseJob(lr.Job))
	}
}

func (p *Pool) installJob(params interface{}) {
	p.setJob(NewJob(params))
}

func (p *Pool) setJob(job *Job, err error) {
	if err != nil {
		log.WithError(err).Warnln("Pool", p, "job ignored")
		return
	}
	log.WithFields(log.Fields{
		"job":        job.JobId,
		"difficulty": job.Difficulty().String(),
	}).Info("New job")
	if p.jobs != nil {
		p.jobs.SetJob(job)
	}
}

func (p *Pool) handleAccepted() {
	// Holding mtx orders this after the Submit whose reply it is.
	p.mtx.Lock()
	ok := p.accepted.IncrementBelow(p.sending.Uint64())
	p.mtx.Unlock()
	if !ok {
		log.Warnln("Pool", p, "unexpected OK without pending share")
		return
	}
	log.WithFields(log.Fields{
		"accepted": p.accepted.Uint64(),
		"sending":  p.sending.Uint64(),
	}).Info("Share accepted")
	if p.OnAccepted != nil {
		p.OnAccepted()
	}
}

func (p *Pool) handlePoolError(reply *protocol.Reply) {
	err := reply.HasError()
	if err == nil {
		err = errors.New("unknown pool error")
	}
	log.WithError(fault.Pool("reply", err)).Errorln("Pool", p, "reported an error")
}

// Submit sends a share. It fails when the session is not logged in or the connection is gone.
func (p *Pool) Submit(jobId, nonceHex, resultHex string) error {
	p.mtx.Lock()
	conn := p.conn
	if conn == nil || (p.status != Authenticating && p.status != Working) {
		p.mtx.Unlock()
		return fault.Transport("submit", ErrNotWritable)
	}
	submit := protocol.NewSubmit(p.workerId, jobId, nonceHex, resultHex)
	// Counted before the write so the reply can never be seen ahead of its share.
	p.sending.Increment()
	p.mtx.Unlock()
	if err := conn.Call(p.identity, submit); err != nil {
		p.mtx.Lock()
		p.sending.DecrementAbove(p.accepted.Uint64())
		p.mtx.Unlock()
		return fault.Transport("submit", err)
	}
	return nil
}

func (p *Pool) Status() PoolState {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.status
}

func (p *Pool) WorkerId() string {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.workerId
}

func (p *Pool) Identity() string {
	return p.identity
}

func (p *Pool) Accepted() uint64 {
	return p.accepted.Uint64()
}

func (p *Pool) Sending() uint64 {
	return p.sending.Uint64()
}
