package protocol

// Method is a request sent to the pool. Id carries the miner identity on every request.
type Method struct {
	Id         string      `json:"id"`
	MethodName string      `json:"method"`
	Params     interface{} `json:"params"`
}

func (m *Method) SetId(id string) {
	m.Id = id
}

type IMethod interface {
	SetId(id string)
}
