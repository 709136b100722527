package template

import (
	"github.com/flosch/pongo2/v6"
	"github.com/krainode/rpcbot/model"
	"github.com/krainode/rpcbot/playground"
)

var playgroundTemplate = `
{%- if registryError %}⚠️ Chain list unavailable: {{ registryError }}
{% endif -%}
<b>🛰 RPC Playground</b>

Chain: <b>{{ sel.ChainName|default:"-" }}</b>
Network: <b>{{ sel.NetworkName|default:"-" }}</b>
Provider: <b>{{ sel.ProviderName|default:"-" }}</b>
{%- if sel.CustomURL %}
Custom URL: <code>{{ sel.CustomURL }}</code>{% if hasHeaders %} (+ headers){% endif %}
{%- endif %}
{%- if spotlight %}
⭐ <b>{{ spotlight.Name }}</b>{% if spotlight.Website %} <a href="{{ spotlight.Website }}">website</a>{% endif %}
{%- endif %}

Endpoint: {% if endpoint %}<code>{{ endpoint }}</code>{% else %}<i>none</i>{% endif %}
{%- if probe %}
Status: {% if probe.OK %}🟢{% else %}🔴{% endif %} {{ probe.Label }}
{%- endif %}

Method: <code>{{ method }}</code>  ·  Recent calls: {{ recent }}
`

var probeTemplate = `📡 {% if probe.OK %}🟢{% else %}🔴{% endif %} {{ probe.Label }}
<code>{{ endpoint }}</code>`

func RanderPlayground(snap playground.Snapshot) (string, error) {
	return rander(playgroundTemplate, pongo2.Context{
		"registryError": snap.RegistryError,
		"sel":           snap.Selection,
		"hasHeaders":    snap.Selection.CustomHeaders != "",
		"spotlight":     snap.Spotlight,
		"endpoint":      snap.EffectiveURL,
		"probe":         snap.Probe,
		"method":        snap.Method,
		"recent":        snap.RecentCount,
	})
}

func RanderProbe(endpoint string, res model.ProbeResult) (string, error) {
	return rander(probeTemplate, pongo2.Context{
		"endpoint": endpoint,
		"probe":    res,
	})
}
