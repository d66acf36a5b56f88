package protocol

type LoginParams struct {
	Login string   `json:"login"`
	Pass  string   `json:"pass"`
	Agent string   `json:"agent"`
	Algo  []string `json:"algo,omitempty"`
}

type Login struct {
	*Method
}

func NewLogin(wallet, pass, agent string, algorithms ...string) *Login {
	return &Login{&Method{
		MethodName: "login",
		Params: &LoginParams{
			Login: wallet,
			Pass:  pass,
			Agent: agent,
			Algo:  algorithms,
		},
	}}
}
