package playground

import (
	"errors"

	"github.com/krainode/rpcbot/rpc"
	"github.com/krainode/rpcbot/viewer"
)

var (
	ErrNoEndpoint = errors.New(rpc.MsgMissingURL)
	ErrNoResponse = errors.New("no response to show")
	ErrNoSuchNode = errors.New("no such node")
)

// Response is the last successful reply, kept for re-rendering the tree.
type Response struct {
	Method  string
	Raw     []byte
	Value   viewer.Value
	Summary string
}

func newResponse(method string, data []byte) (*Response, error) {
	v, err := viewer.Parse(data)
	if err != nil {
		return nil, err
	}
	resp := &Response{Method: method, Raw: data, Value: v}
	if result, ok := rpc.ExtractResult(data); ok {
		resp.Summary = viewer.ResultSummary(method, result)
	}
	return resp, nil
}

// View is a rendered response tree.
type View struct {
	Method     string
	Summary    string
	Lines      []viewer.Line
	Containers []viewer.Line
	Options    viewer.Options
}

func renderView(resp *Response, opts viewer.Options, open *viewer.OpenState) View {
	lines := viewer.Render(resp.Value, opts, open)
	return View{
		Method:     resp.Method,
		Summary:    resp.Summary,
		Lines:      lines,
		Containers: viewer.Containers(lines),
		Options:    opts,
	}
}

// ViewOf renders one reply in the default mode with nothing toggled. It
// does not touch any playground state.
func ViewOf(resp *Response) (View, error) {
	if resp == nil {
		return View{}, ErrNoResponse
	}
	return renderView(resp, viewer.DefaultOptions(), viewer.NewOpenState()), nil
}

func (p *Playground) view() (View, error) {
	if p.response == nil {
		return View{}, ErrNoResponse
	}
	return renderView(p.response, p.viewOpts, p.open), nil
}

// ResponseView renders the last response with the current open state.
func (p *Playground) ResponseView() (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view()
}

// ToggleNode flips the n-th visible container of the current view.
func (p *Playground) ToggleNode(n int) (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, err := p.view()
	if err != nil {
		return v, err
	}
	if n < 0 || n >= len(v.Containers) {
		return v, ErrNoSuchNode
	}
	p.open.ToggleLine(v.Containers[n], p.viewOpts.Depth)
	return p.view()
}

// SetViewOptions switches presenter mode and drops explicit toggles.
func (p *Playground) SetViewOptions(opts viewer.Options) (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewOpts = opts
	p.open.Reset()
	return p.view()
}
