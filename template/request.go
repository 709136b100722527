package template

import (
	"github.com/flosch/pongo2/v6"
	"github.com/krainode/rpcbot/playground"
	"github.com/krainode/rpcbot/snippet"
	"github.com/krainode/rpcbot/util"
)

var requestTemplate = `<b>📄 Request</b> · {{ family }} · <code>{{ method }}</code>
<pre><code class="language-json">{{ text }}</code></pre>`

var snippetTemplate = `<b>💻 {{ label }}</b>
<pre><code class="language-{{ lang }}">{{ code }}</code></pre>`

var snippetLang = map[snippet.Kind]string{
	snippet.Curl:       "bash",
	snippet.JavaScript: "javascript",
	snippet.Python:     "python",
	snippet.Go:         "go",
}

func RanderRequest(snap playground.Snapshot) (string, error) {
	return rander(requestTemplate, pongo2.Context{
		"family": string(snap.Family),
		"method": snap.Method,
		"text":   util.TruncateString(snap.RequestText, maxBodyRunes),
	})
}

func RanderSnippet(kind snippet.Kind, code string) (string, error) {
	return rander(snippetTemplate, pongo2.Context{
		"label": snippet.Label(kind),
		"lang":  snippetLang[kind],
		"code":  util.TruncateString(code, maxBodyRunes),
	})
}
