package snippet

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/samber/lo"
)

type Kind string

const (
	Curl       Kind = "curl"
	JavaScript Kind = "js"
	Python     Kind = "python"
	Go         Kind = "go"
)

// Kinds lists snippets in tab order.
var Kinds = []Kind{Curl, JavaScript, Python, Go}

var labels = map[Kind]string{
	Curl:       "cURL",
	JavaScript: "JavaScript",
	Python:     "Python",
	Go:         "Go",
}

var ErrUnknownKind = errors.New("unknown snippet kind")

func Label(k Kind) string {
	return labels[k]
}

func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, lo.Contains(Kinds, k)
}

// Header is one request header in render order.
type Header struct {
	Key   string
	Value string
}

// Line is the "Key: Value" form used by cURL.
func (h Header) Line() string {
	return h.Key + ": " + h.Value
}

func init() {
	pongo2.RegisterFilter("shquote", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue("'" + strings.ReplaceAll(in.String(), "'", `'\''`) + "'"), nil
	})
	pongo2.RegisterFilter("strquote", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(strconv.Quote(in.String())), nil
	})
	pongo2.RegisterFilter("goraw", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		s := in.String()
		if strings.Contains(s, "`") {
			return pongo2.AsValue(strconv.Quote(s)), nil
		}
		return pongo2.AsValue("`" + s + "`"), nil
	})
}

var sources = map[Kind]string{
	Curl: `{% autoescape off %}curl -X POST {{ url|shquote }} \
{% for h in headers %}  -H {{ h.Line()|shquote }} \
{% endfor %}  --data {{ body|shquote }}{% endautoescape %}`,

	JavaScript: `{% autoescape off %}const res = await fetch({{ url|strquote }}, {
  method: "POST",
  headers: {
{% for h in headers %}    {{ h.Key|strquote }}: {{ h.Value|strquote }},
{% endfor %}  },
  body: JSON.stringify({{ body }}),
});
const data = await res.json();
console.log(data);{% endautoescape %}`,

	Python: `{% autoescape off %}import requests

resp = requests.post(
    {{ url|strquote }},
    headers={
{% for h in headers %}        {{ h.Key|strquote }}: {{ h.Value|strquote }},
{% endfor %}    },
    data={{ body|strquote }},
)
print(resp.json()){% endautoescape %}`,

	Go: `{% autoescape off %}body := strings.NewReader({{ body|goraw }})
req, err := http.NewRequest(http.MethodPost, {{ url|strquote }}, body)
if err != nil {
	log.Fatal(err)
}
{% for h in headers %}req.Header.Set({{ h.Key|strquote }}, {{ h.Value|strquote }})
{% endfor %}
resp, err := http.DefaultClient.Do(req)
if err != nil {
	log.Fatal(err)
}
defer resp.Body.Close()
out, _ := io.ReadAll(resp.Body)
fmt.Println(string(out)){% endautoescape %}`,
}

// Render produces the snippet for one language. The request text is
// compacted when it is valid JSON and used verbatim otherwise.
func Render(k Kind, url, requestText string, headers map[string]string) (string, error) {
	src, ok := sources[k]
	if !ok {
		return "", ErrUnknownKind
	}
	tpl, err := pongo2.FromString(src)
	if err != nil {
		return "", err
	}
	return tpl.Execute(pongo2.Context{
		"url":     url,
		"body":    compact(requestText),
		"headers": Headers(headers),
	})
}

// Headers orders request headers: content-type first, then custom headers
// sorted by name. A custom content-type replaces the default.
func Headers(custom map[string]string) []Header {
	out := []Header{{Key: "content-type", Value: "application/json"}}
	keys := lo.Keys(custom)
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, "content-type") {
			out[0] = Header{Key: k, Value: custom[k]}
			continue
		}
		out = append(out, Header{Key: k, Value: custom[k]})
	}
	return out
}

func compact(text string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(strings.TrimSpace(text))); err != nil {
		return text
	}
	return buf.String()
}
