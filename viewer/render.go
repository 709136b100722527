package viewer

import (
	"fmt"
	"strconv"
	"strings"
)

// Unlimited expands every level.
const Unlimited = -1

// Options mirror the presenter modes: Depth 1 shows root fields with nested
// containers closed, 0 closes everything, Unlimited opens everything.
type Options struct {
	Depth           int
	ShowRootSummary bool
}

func DefaultOptions() Options {
	return Options{Depth: 1}
}

func AllCollapsed() Options {
	return Options{Depth: 0}
}

func AllExpanded() Options {
	return Options{Depth: Unlimited}
}

// Line is one rendered row. Container rows carry the path used to toggle
// them.
type Line struct {
	Depth     int
	Indent    int
	Key       string
	Text      string
	Hint      string
	Path      string
	Container bool
	Open      bool
}

// Render walks v and returns the visible rows for the given open state.
func Render(v Value, opts Options, state *OpenState) []Line {
	if state == nil {
		state = NewOpenState()
	}
	r := renderer{opts: opts, state: state}

	if !v.IsContainer() {
		return []Line{primitiveLine(v, "", 0)}
	}
	if opts.ShowRootSummary {
		r.node(v, "", "", 0, 0)
		return r.lines
	}
	r.children(v, "", 1, 0, true)
	return r.lines
}

type renderer struct {
	opts  Options
	state *OpenState
	lines []Line
}

func (r *renderer) node(v Value, key, path string, depth, indent int) {
	if !v.IsContainer() {
		r.lines = append(r.lines, primitiveLine(v, key, indent))
		return
	}
	open := r.state.IsOpen(path, depth, r.opts.Depth)
	r.lines = append(r.lines, Line{
		Depth:     depth,
		Indent:    indent,
		Key:       key,
		Text:      Summary(v),
		Path:      path,
		Container: true,
		Open:      open,
	})
	if open {
		r.children(v, path, depth+1, indent+1, false)
	}
}

// children renders the members of v. Array indices are only shown as keys
// for the root when its summary row is hidden.
func (r *renderer) children(v Value, path string, depth, indent int, root bool) {
	switch v.Kind {
	case Object:
		for _, f := range v.Fields {
			r.node(f.Value, quote(f.Key), childPath(path, f.Key), depth, indent)
		}
	case Array:
		for i, item := range v.Items {
			idx := strconv.Itoa(i)
			key := ""
			if root {
				key = quote(idx)
			}
			r.node(item, key, childPath(path, idx), depth, indent)
		}
	}
}

func primitiveLine(v Value, key string, indent int) Line {
	return Line{Indent: indent, Key: key, Text: Primitive(v), Hint: HintFor(v)}
}

// Summary is the collapsed label of a container.
func Summary(v Value) string {
	n := v.Len()
	if v.Kind == Array {
		return fmt.Sprintf("[%d %s]", n, plural(n, "item", "items"))
	}
	return fmt.Sprintf("{%d %s}", n, plural(n, "property", "properties"))
}

// Primitive formats a scalar: null, booleans and numbers verbatim, strings
// quoted.
func Primitive(v Value) string {
	switch v.Kind {
	case Bool:
		return strconv.FormatBool(v.Bool)
	case Number:
		return v.Number
	case String:
		return quote(v.Str)
	default:
		return "null"
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func quote(s string) string {
	return `"` + s + `"`
}

// path segments are joined with "/"; "~" and "/" inside keys are escaped
// the JSON pointer way.
func childPath(parent, seg string) string {
	seg = strings.ReplaceAll(seg, "~", "~0")
	seg = strings.ReplaceAll(seg, "/", "~1")
	return parent + "/" + seg
}

// Format joins rendered rows into plain text. Closed containers are marked
// with ▸, open ones with ▾.
func Format(lines []Line) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Repeat("  ", l.Indent))
		if l.Container {
			if l.Open {
				sb.WriteString("▾ ")
			} else {
				sb.WriteString("▸ ")
			}
		}
		if l.Key != "" {
			sb.WriteString(l.Key)
			sb.WriteString(": ")
		}
		sb.WriteString(l.Text)
		if l.Hint != "" {
			sb.WriteString("  (")
			sb.WriteString(l.Hint)
			sb.WriteString(")")
		}
	}
	return sb.String()
}

// Containers returns the container rows in display order, which is the
// order toggle buttons are offered in.
func Containers(lines []Line) []Line {
	out := make([]Line, 0)
	for _, l := range lines {
		if l.Container {
			out = append(out, l)
		}
	}
	return out
}
