package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/krainode/rpcbot/methods"
	"github.com/krainode/rpcbot/model"
	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON      = errors.New("Invalid JSON in request body.")
	ErrNotObjectOrArray = errors.New("Request must be a JSON object or array.")
)

// DefaultMethod is selected on a fresh editor when the family has it.
const DefaultMethod = "eth_blockNumber"

// Builder holds the request editor state: the chain it was built for, the
// last method picked from templates or presets, and the current text.
// Text may diverge from method/params after a free-form edit.
type Builder struct {
	chain  string
	method string
	params []json.RawMessage
	text   string
}

func NewBuilder(chainName string) *Builder {
	b := &Builder{chain: chainName}
	b.method, b.params = methods.Resolve(b.Family(), DefaultMethod)
	b.render()
	return b
}

func (b *Builder) Chain() string {
	return b.chain
}

func (b *Builder) Method() string {
	return b.method
}

func (b *Builder) Text() string {
	return b.text
}

func (b *Builder) Family() methods.Family {
	return methods.FamilyOf(b.chain)
}

func (b *Builder) Params() []json.RawMessage {
	return methods.CloneParams(b.params)
}

// Methods lists the template methods of the current family in authored order.
func (b *Builder) Methods() []string {
	return methods.Names(b.Family())
}

// SetChain switches chain. The current method is kept when the new family
// has it, otherwise the family's first method is taken. Params and text are
// regenerated from the template either way.
func (b *Builder) SetChain(name string) {
	if name == b.chain {
		return
	}
	b.chain = name
	b.method, b.params = methods.Resolve(b.Family(), b.method)
	b.render()
}

// SetMethod picks a template method of the current family. Unknown methods
// are rejected.
func (b *Builder) SetMethod(name string) bool {
	params, ok := methods.Lookup(b.Family(), name)
	if !ok {
		return false
	}
	b.method = name
	b.params = params
	b.render()
	return true
}

// Preset loads method and params without consulting the templates.
func (b *Builder) Preset(method string, params []json.RawMessage) {
	b.method = method
	b.params = methods.CloneParams(params)
	b.render()
}

// Edit replaces the request text verbatim.
func (b *Builder) Edit(text string) {
	b.text = text
}

func (b *Builder) render() {
	b.text = FormatRequest(b.method, b.params)
}

// FormatRequest renders the envelope with a two-space indent.
func FormatRequest(method string, params []json.RawMessage) string {
	env := model.NewRequestEnvelope(method, params)
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		// params came from invalid raw JSON; fall back to an empty list
		env.Params = []json.RawMessage{}
		data, _ = json.MarshalIndent(env, "", "  ")
	}
	return string(data)
}

// ParsedRequest is the request text validated for sending.
type ParsedRequest struct {
	Body   []byte
	Method string
	Batch  bool
}

// ParseRequest validates text for dispatch. The method name comes from the
// object's "method", or the first batch element's, else fallback.
func ParseRequest(text, fallback string) (ParsedRequest, error) {
	trimmed := strings.TrimSpace(text)
	if !gjson.Valid(trimmed) {
		return ParsedRequest{Method: fallback}, ErrInvalidJSON
	}

	res := gjson.Parse(trimmed)
	if !res.IsObject() && !res.IsArray() {
		return ParsedRequest{Method: fallback}, ErrNotObjectOrArray
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(trimmed)); err != nil {
		return ParsedRequest{Method: fallback}, ErrInvalidJSON
	}

	return ParsedRequest{
		Body:   buf.Bytes(),
		Method: methodName(res, fallback),
		Batch:  res.IsArray(),
	}, nil
}

// MethodName reads the method name out of request text without validating
// it further.
func MethodName(text, fallback string) string {
	if !gjson.Valid(text) {
		return fallback
	}
	return methodName(gjson.Parse(text), fallback)
}

func methodName(res gjson.Result, fallback string) string {
	m := res.Get("method")
	if res.IsArray() {
		m = res.Get("0.method")
	}
	if m.Type != gjson.String {
		return fallback
	}
	return m.String()
}
