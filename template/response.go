package template

import (
	"github.com/flosch/pongo2/v6"
	"github.com/krainode/rpcbot/playground"
	"github.com/krainode/rpcbot/util"
	"github.com/krainode/rpcbot/viewer"
)

var responseTemplate = `✅ <code>{{ method }}</code>{% if latency >= 0 %} · {{ latency|formatLatency }}{% endif %}
{%- if summary %}
<b>{{ summary }}</b>
{%- endif %}
<pre>{{ tree }}</pre>`

var failureTemplate = `
{%- if timeout -%}
{% if retried %}<b>⚠️ RPC endpoint unreachable</b>
The RPC endpoint appears to be completely unreachable. Please check the URL or try a different provider.
{%- else %}<b>⚠️ Endpoint not responding</b>
This RPC may be offline or overloaded. Try switching to another provider or checking its status page.
{%- endif %}
{%- else -%}
❌ <b>{{ error }}</b>
{%- endif %}
{% if method %}Method: <code>{{ method }}</code>{% endif %}
{%- if endpoint %}
Endpoint: <code>{{ endpoint }}</code>{% endif %}
{%- if latency >= 0 %} · {{ latency|formatLatency }}{% endif %}`

var successNoTreeTemplate = `✅ <code>{{ method }}</code>{% if latency >= 0 %} · {{ latency|formatLatency }}{% endif %}
{%- if endpoint %}
Endpoint: <code>{{ endpoint }}</code>{% endif %}`

// RanderOutcome draws the result of a send. retried marks a timeout that
// followed an earlier timeout on the same endpoint. A successful send is
// never drawn as a failure, even without a tree to show.
func RanderOutcome(out playground.Outcome, view *playground.View, retried bool) (string, error) {
	latency := int64(-1)
	if out.Record != nil {
		latency = out.Record.LatencyMs
	}
	if out.OK && view == nil {
		return rander(successNoTreeTemplate, pongo2.Context{
			"method":   out.Method,
			"endpoint": out.EndpointURL,
			"latency":  latency,
		})
	}
	if !out.OK {
		return rander(failureTemplate, pongo2.Context{
			"timeout":  out.Timeout,
			"retried":  retried,
			"error":    out.Error,
			"method":   out.Method,
			"endpoint": out.EndpointURL,
			"latency":  latency,
		})
	}
	return randerView(out.Method, latency, *view)
}

// RanderView redraws the last response after a toggle or mode change.
func RanderView(view playground.View) (string, error) {
	return randerView(view.Method, -1, view)
}

func randerView(method string, latency int64, view playground.View) (string, error) {
	return rander(responseTemplate, pongo2.Context{
		"method":  method,
		"latency": latency,
		"summary": view.Summary,
		"tree":    util.TruncateString(viewer.Format(view.Lines), maxBodyRunes),
	})
}
