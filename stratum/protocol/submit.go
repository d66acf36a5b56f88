package protocol

type SubmitParams struct {
	WorkerId string `json:"id"`
	JobId    string `json:"job_id"`
	Nonce    string `json:"nonce"`
	Result   string `json:"result"`
}

type Submit struct {
	*Method
}

func NewSubmit(workerId, jobId, nonce, result string) *Submit {
	return &Submit{&Method{
		MethodName: "submit",
		Params: &SubmitParams{
			WorkerId: workerId,
			JobId:    jobId,
			Nonce:    nonce,
			Result:   result,
		},
	}}
}
