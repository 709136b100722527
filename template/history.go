package template

import (
	"github.com/flosch/pongo2/v6"
	"github.com/krainode/rpcbot/model"
)

var historyTemplate = `
{%- if records -%}
<b>🕘 Recent calls</b> ({{ records|length }})
{% for r in records %}
{% if r.OK %}✅{% else %}❌{% endif %} <code>{{ r.Method }}</code> · {{ r.LatencyMs|formatLatency }} · {{ r.Timestamp|formatTime }}
<code>{{ r.EndpointURL }}</code>
{%- endfor %}
{%- else -%}
<b>🕘 Recent calls</b>
No calls yet.
{%- endif %}`

func RanderHistory(records []model.DispatchRecord) (string, error) {
	return rander(historyTemplate, pongo2.Context{
		"records": records,
	})
}
