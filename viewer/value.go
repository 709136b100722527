package viewer

import (
	"errors"

	"github.com/tidwall/gjson"
)

type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Field is one member of an object, kept in document order.
type Field struct {
	Key   string
	Value Value
}

// Value is a decoded JSON document. Numbers keep their source text so large
// integers survive unchanged.
type Value struct {
	Kind   Kind
	Bool   bool
	Number string
	Str    string
	Items  []Value
	Fields []Field
}

var ErrInvalidJSON = errors.New("invalid JSON")

func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, ErrInvalidJSON
	}
	return FromResult(gjson.ParseBytes(data)), nil
}

func FromResult(r gjson.Result) Value {
	switch {
	case r.IsObject():
		v := Value{Kind: Object, Fields: make([]Field, 0)}
		r.ForEach(func(key, value gjson.Result) bool {
			v.Fields = append(v.Fields, Field{Key: key.String(), Value: FromResult(value)})
			return true
		})
		return v
	case r.IsArray():
		v := Value{Kind: Array, Items: make([]Value, 0)}
		r.ForEach(func(_, value gjson.Result) bool {
			v.Items = append(v.Items, FromResult(value))
			return true
		})
		return v
	}

	switch r.Type {
	case gjson.True:
		return Value{Kind: Bool, Bool: true}
	case gjson.False:
		return Value{Kind: Bool}
	case gjson.Number:
		return Value{Kind: Number, Number: r.Raw}
	case gjson.String:
		return Value{Kind: String, Str: r.Str}
	default:
		return Value{Kind: Null}
	}
}

func (v Value) IsContainer() bool {
	return v.Kind == Array || v.Kind == Object
}

// Len is the number of direct children of a container.
func (v Value) Len() int {
	switch v.Kind {
	case Array:
		return len(v.Items)
	case Object:
		return len(v.Fields)
	}
	return 0
}
