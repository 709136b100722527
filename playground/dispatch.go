package playground

import (
	"context"
	"time"

	"github.com/krainode/rpcbot/history"
	"github.com/krainode/rpcbot/model"
	"github.com/krainode/rpcbot/rpc"
	"github.com/krainode/rpcbot/selection"
	"github.com/krainode/rpcbot/snippet"
)

// Outcome is the result of one send as shown to the user.
type Outcome struct {
	OK          bool
	Error       string
	Timeout     bool
	EndpointURL string
	Method      string
	Latency     time.Duration
	Record      *model.DispatchRecord
	Response    *Response
}

type request struct {
	url      string
	headers  map[string]string
	text     string
	fallback string
}

func (p *Playground) currentRequest() request {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel := p.state.Selection
	return request{
		url:      selection.EffectiveURL(p.reg, sel),
		headers:  selection.EffectiveHeaders(sel),
		text:     p.builder.Text(),
		fallback: p.builder.Method(),
	}
}

// Send parses the request text and posts it to the effective endpoint.
// Every attempt that reaches an endpoint is recorded, failures included.
func (p *Playground) Send(ctx context.Context) Outcome {
	req := p.currentRequest()
	if req.url == "" {
		return Outcome{Error: rpc.MsgMissingURL}
	}

	start := time.Now()
	parsed, err := rpc.ParseRequest(req.text, req.fallback)
	if err != nil {
		return p.finish(ctx, req, start, rpc.MethodName(req.text, req.fallback), nil, err)
	}

	data, err := p.dispatcher.Send(ctx, req.url, parsed.Body, req.headers)
	return p.finish(ctx, req, start, parsed.Method, data, err)
}

func (p *Playground) finish(ctx context.Context, req request, start time.Time, method string, data []byte, err error) Outcome {
	latency := time.Since(start)
	rec := history.NewRecord(req.url, method, err == nil, latency, time.Now())
	p.history.Record(ctx, rec)

	out := Outcome{
		OK:          err == nil,
		EndpointURL: req.url,
		Method:      method,
		Latency:     latency,
		Record:      &rec,
	}
	if err != nil {
		out.Error = rpc.FriendlyMessage(err)
		out.Timeout = rpc.IsTimeout(err)
	}

	var resp *Response
	if err == nil {
		var perr error
		resp, perr = newResponse(method, data)
		if perr != nil {
			out.OK = false
			out.Error = perr.Error()
		}
	}

	p.mu.Lock()
	p.response = resp
	p.open.Reset()
	p.mu.Unlock()

	out.Response = resp
	return out
}

// Probe checks the effective endpoint and stores the label. A result is
// dropped if the endpoint changed while probing.
func (p *Playground) Probe(ctx context.Context) (model.ProbeResult, bool) {
	req := p.currentRequest()
	if req.url == "" {
		return model.ProbeResult{}, false
	}

	res := p.dispatcher.Probe(ctx, req.url, req.headers)

	p.mu.Lock()
	defer p.mu.Unlock()
	if selection.EffectiveURL(p.reg, p.state.Selection) == req.url {
		p.state = selection.Reduce(p.reg, p.state, selection.ProbeCompleted{Result: res})
	}
	return res, true
}

// Snippet renders the current request for one language.
func (p *Playground) Snippet(kind snippet.Kind) (string, error) {
	req := p.currentRequest()
	if req.url == "" {
		return "", ErrNoEndpoint
	}
	return snippet.Render(kind, req.url, req.text, req.headers)
}
