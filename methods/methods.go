package methods

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Family picks the method template set for a chain.
type Family string

const (
	FamilyEVM   Family = "evm"
	FamilyAvail Family = "avail"
)

var (
	//go:embed evm.json
	evmRaw []byte
	//go:embed avail.json
	availRaw []byte
	//go:embed presets.json
	presetsRaw []byte
)

// Template is one method with its example params, in authored order.
type Template struct {
	Method string
	Params []json.RawMessage
}

type Preset struct {
	Name        string
	Method      string
	Params      []json.RawMessage
	Description string
}

var (
	evmTemplates   = parseTemplates(evmRaw)
	availTemplates = parseTemplates(availRaw)
	presets        = parsePresets(presetsRaw)
)

// FamilyOf matches "avail" anywhere in the chain name, ignoring case.
// Everything else is EVM.
func FamilyOf(chainName string) Family {
	if strings.Contains(strings.ToLower(chainName), "avail") {
		return FamilyAvail
	}
	return FamilyEVM
}

func Templates(f Family) []Template {
	src := evmTemplates
	if f == FamilyAvail {
		src = availTemplates
	}
	out := make([]Template, len(src))
	for i, t := range src {
		out[i] = Template{Method: t.Method, Params: CloneParams(t.Params)}
	}
	return out
}

func Names(f Family) []string {
	tpls := Templates(f)
	names := make([]string, 0, len(tpls))
	for _, t := range tpls {
		names = append(names, t.Method)
	}
	return names
}

// Lookup returns the example params for method in family f.
func Lookup(f Family, method string) ([]json.RawMessage, bool) {
	for _, t := range Templates(f) {
		if t.Method == method {
			return t.Params, true
		}
	}
	return nil, false
}

// Resolve returns method and its params if the family has it, otherwise the
// family's first method and params.
func Resolve(f Family, method string) (string, []json.RawMessage) {
	if params, ok := Lookup(f, method); ok {
		return method, params
	}
	tpls := Templates(f)
	if len(tpls) == 0 {
		return method, []json.RawMessage{}
	}
	return tpls[0].Method, tpls[0].Params
}

func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		p.Params = CloneParams(p.Params)
		out[i] = p
	}
	return out
}

func CloneParams(in []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(in))
	for i, p := range in {
		out[i] = append(json.RawMessage(nil), p...)
	}
	return out
}

// ParseParams splits a JSON array into its raw elements.
func ParseParams(raw string) ([]json.RawMessage, bool) {
	res := gjson.Parse(raw)
	if !gjson.Valid(raw) || !res.IsArray() {
		return nil, false
	}
	return rawElements(res), true
}

func rawElements(arr gjson.Result) []json.RawMessage {
	out := make([]json.RawMessage, 0)
	arr.ForEach(func(_, value gjson.Result) bool {
		out = append(out, json.RawMessage(value.Raw))
		return true
	})
	return out
}

func parseTemplates(data []byte) []Template {
	out := make([]Template, 0)
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		out = append(out, Template{Method: key.String(), Params: rawElements(value)})
		return true
	})
	return out
}

func parsePresets(data []byte) []Preset {
	out := make([]Preset, 0)
	gjson.ParseBytes(data).ForEach(func(_, value gjson.Result) bool {
		out = append(out, Preset{
			Name:        value.Get("name").String(),
			Method:      value.Get("method").String(),
			Params:      rawElements(value.Get("params")),
			Description: value.Get("description").String(),
		})
		return true
	})
	return out
}
