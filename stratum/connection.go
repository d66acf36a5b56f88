package stratum

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/fernandosanchezjr/gocpuminer/stratum/protocol"
	"github.com/goccy/go-json"
)

const (
	DialTimeout     = 1 * time.Second
	KeepAlivePeriod = 30 * time.Second
	WriteTimeout    = 10 * time.Second
	ReadBufferSize  = 4096
)

type Connection struct {
	conn *net.TCPConn
	mtx  sync.Mutex
}

func NewConnection(address string) (*Connection, error) {
	var host, port string
	var addrs []string
	var err error
	if host, port, err = net.SplitHostPort(address); err != nil {
		return nil, err
	}
	if addrs, err = net.LookupHost(host); err != nil {
		return nil, err
	}
	for _, addr := range addrs {
		var rawConn net.Conn
		var conn *net.TCPConn
		var ok bool
		dialer := net.Dialer{Timeout: DialTimeout}
		if rawConn, err = dialer.Dial("tcp", net.JoinHostPort(addr, port)); err != nil {
			continue
		}
		if conn, ok = rawConn.(*net.TCPConn); !ok {
			_ = rawConn.Close()
			return nil, errors.New("Invalid connection object")
		}
		if err = conn.SetKeepAlive(true); err != nil {
			_ = conn.Close()
			return nil, err
		}
		if err = conn.SetKeepAlivePeriod(KeepAlivePeriod); err != nil {
			_ = conn.Close()
			return nil, err
		}
		if err = conn.SetReadBuffer(ReadBufferSize); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return &Connection{conn: conn}, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("No route to %s", address)
}

func (c *Connection) Close() error {
	return c.conn.Close()
}

func (c *Connection) Read(buf []byte) (int, error) {
	return c.conn.Read(buf)
}

func (c *Connection) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// Call writes one request terminated by a newline. Concurrent calls never interleave.
func (c *Connection) Call(id string, command protocol.IMethod) error {
	command.SetId(id)
	data, err := json.Marshal(command)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil {
		return err
	}
	_, err = c.conn.Write(data)
	return err
}
