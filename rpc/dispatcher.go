package rpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/krainode/rpcbot/logger"
	"github.com/krainode/rpcbot/model"
	"github.com/tidwall/gjson"
)

const (
	DefaultSendTimeout  = 40 * time.Second
	DefaultProbeTimeout = 10 * time.Second

	probeMethod = "web3_clientVersion"
)

const (
	ProbeOK        = "OK"
	ProbeNoResult  = "OK (no result)"
	ProbeTimeout   = "Timeout"
	ProbeBlocked   = "Blocked (CORS/Network)"
	contentTypeKey = "content-type"
)

var probeBody = []byte(`{"jsonrpc":"2.0","id":1,"method":"web3_clientVersion","params":[]}`)

// Dispatcher posts JSON-RPC bodies to endpoints. Zero timeouts fall back to
// the defaults.
type Dispatcher struct {
	Client       *http.Client
	SendTimeout  time.Duration
	ProbeTimeout time.Duration
	// Verbose logs every exchange on the console logger.
	Verbose bool
}

func NewDispatcher(sendTimeout, probeTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		Client:       &http.Client{},
		SendTimeout:  sendTimeout,
		ProbeTimeout: probeTimeout,
	}
}

type httpReply struct {
	status int
	body   []byte
}

// Send posts body and returns the decoded JSON response. Non-2xx answers
// fail with "HTTP <status>".
func (d *Dispatcher) Send(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	timeout := d.SendTimeout
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}

	data, err := Call(ctx, timeout, func(ctx context.Context) ([]byte, error) {
		reply, err := d.post(ctx, url, body, headers)
		if err != nil {
			return nil, err
		}
		if reply.status < 200 || reply.status > 299 {
			return nil, &CallError{Kind: KindError, Status: reply.status, Message: fmt.Sprintf("HTTP %d", reply.status)}
		}
		if !gjson.ValidBytes(reply.body) {
			return nil, &CallError{Kind: KindError, Status: reply.status, Message: "Response is not valid JSON."}
		}
		return reply.body, nil
	})

	if d.Verbose {
		logger.NewStdLog(url, body, data)
	}
	if err != nil {
		dispatchLog().Err(err).Str("url", url).Msg("send failed")
		return nil, err
	}
	return data, nil
}

// Probe checks liveness with web3_clientVersion. It never fails; the outcome
// is carried by the label.
func (d *Dispatcher) Probe(ctx context.Context, url string, headers map[string]string) model.ProbeResult {
	timeout := d.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	reply, err := Call(ctx, timeout, func(ctx context.Context) (httpReply, error) {
		return d.post(ctx, url, probeBody, headers)
	})
	if err != nil {
		probeLog().Err(err).Str("url", url).Str("method", probeMethod).Msg("probe failed")
		if IsTimeout(err) {
			return model.ProbeResult{Label: ProbeTimeout}
		}
		return model.ProbeResult{Label: ProbeBlocked}
	}

	if reply.status < 200 || reply.status > 299 {
		return model.ProbeResult{Label: fmt.Sprintf("HTTP %d", reply.status)}
	}
	if gjson.ValidBytes(reply.body) && truthy(gjson.GetBytes(reply.body, "result")) {
		return model.ProbeResult{OK: true, Label: ProbeOK}
	}
	return model.ProbeResult{OK: true, Label: ProbeNoResult}
}

func (d *Dispatcher) post(ctx context.Context, url string, body []byte, headers map[string]string) (httpReply, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return httpReply{}, err
	}
	req.Header.Set(contentTypeKey, "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return httpReply{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return httpReply{}, fmt.Errorf("failed to read response: %w", err)
	}
	return httpReply{status: resp.StatusCode, body: data}, nil
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	default:
		return r.Exists()
	}
}

// ExtractResult returns the "result" member of an object response, or of
// the first element of a batch response.
func ExtractResult(data []byte) (gjson.Result, bool) {
	res := gjson.ParseBytes(data)
	var out gjson.Result
	switch {
	case res.IsArray():
		out = res.Get("0.result")
	case res.IsObject():
		out = res.Get("result")
	}
	return out, out.Exists()
}
