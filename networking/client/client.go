package client

import (
	"errors"
	"time"

	"github.com/fernandosanchezjr/gocpuminer/networking/services"
	"github.com/valyala/gorpc"
)

const ClientTimeout = time.Second

var ServiceNotFound = errors.New("Service not found")

type Client struct {
	RpcClient   *gorpc.Client
	Dispatchers map[string]*gorpc.DispatcherClient
}

func NewClient(socketPath string, registry *services.Registry) *Client {
	cl := &Client{
		RpcClient:   gorpc.NewUnixClient(socketPath),
		Dispatchers: map[string]*gorpc.DispatcherClient{},
	}
	cl.RpcClient.RequestTimeout = ClientTimeout
	cl.RpcClient.LogError = gorpc.NilErrorLogger
	dispatcher := gorpc.NewDispatcher()
	for name, service := range registry.Services {
		dispatcher.AddService(name, service)
		cl.Dispatchers[name] = dispatcher.NewServiceClient(name, cl.RpcClient)
	}
	return cl
}

func (cl *Client) Start() {
	cl.RpcClient.Start()
}

func (cl *Client) Stop() {
	cl.RpcClient.Stop()
}

// Send does not wait for the server to handle the request.
func (cl *Client) Send(service, funcName string, request interface{}) error {
	if client, found := cl.Dispatchers[service]; !found {
		return ServiceNotFound
	} else {
		return client.Send(funcName, request)
	}
}
