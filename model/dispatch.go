package model

import "encoding/json"

const JSONRPCVersion = "2.0"

// RequestEnvelope is a single JSON-RPC 2.0 request. Field order matches the
// text shown to users; params stay raw so object keys keep their order.
type RequestEnvelope struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
	ID      int               `json:"id"`
}

func NewRequestEnvelope(method string, params []json.RawMessage) RequestEnvelope {
	if params == nil {
		params = []json.RawMessage{}
	}
	return RequestEnvelope{
		JSONRPC: JSONRPCVersion,
		Method:  method,
		Params:  params,
		ID:      1,
	}
}

func UnmarshalDispatchRecords(data []byte) ([]DispatchRecord, error) {
	var r []DispatchRecord
	err := json.Unmarshal(data, &r)
	return r, err
}

// DispatchRecord is one attempt to call an effective endpoint.
type DispatchRecord struct {
	EndpointURL string `json:"endpointUrl"`
	Method      string `json:"method"`
	Timestamp   int64  `json:"timestamp"`
	OK          bool   `json:"ok"`
	LatencyMs   int64  `json:"latency"`
}
