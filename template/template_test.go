package template

import (
	"strings"
	"testing"
	"time"

	"github.com/krainode/rpcbot/model"
	"github.com/krainode/rpcbot/playground"
	"github.com/krainode/rpcbot/snippet"
	"github.com/krainode/rpcbot/spotlight"
	"github.com/krainode/rpcbot/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRanderPlayground(t *testing.T) {
	snap := playground.Snapshot{
		Selection:    model.Selection{ChainName: "ethereum", NetworkName: "mainnet", ProviderName: "Fastnode"},
		EffectiveURL: "https://eth.fastnode.io",
		Probe:        &model.ProbeResult{OK: true, Label: "OK"},
		Spotlight:    &spotlight.ProviderMeta{Name: "Fastnode", Website: "https://fastnode.io"},
		Method:       "eth_blockNumber",
		RecentCount:  3,
	}
	out, err := RanderPlayground(snap)
	require.NoError(t, err)
	assert.Contains(t, out, "Chain: <b>ethereum</b>")
	assert.Contains(t, out, "Provider: <b>Fastnode</b>")
	assert.Contains(t, out, "<code>https://eth.fastnode.io</code>")
	assert.Contains(t, out, "🟢 OK")
	assert.Contains(t, out, "⭐ <b>Fastnode</b>")
	assert.Contains(t, out, "Recent calls: 3")
	assert.NotContains(t, out, "Custom URL")
	assert.NotContains(t, out, "unavailable")
}

func TestRanderPlaygroundEmpty(t *testing.T) {
	out, err := RanderPlayground(playground.Snapshot{RegistryError: "HTTP 500"})
	require.NoError(t, err)
	assert.Contains(t, out, "Chain list unavailable: HTTP 500")
	assert.Contains(t, out, "Chain: <b>-</b>")
	assert.Contains(t, out, "<i>none</i>")
	assert.NotContains(t, out, "Status:")
}

func TestRanderPlaygroundCustomURL(t *testing.T) {
	snap := playground.Snapshot{Selection: model.Selection{CustomURL: "https://my.rpc", CustomHeaders: `{"a":"b"}`}}
	out, err := RanderPlayground(snap)
	require.NoError(t, err)
	assert.Contains(t, out, "Custom URL: <code>https://my.rpc</code> (+ headers)")
}

func TestRanderOutcomeSuccess(t *testing.T) {
	v, err := viewer.Parse([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x10"}`))
	require.NoError(t, err)
	lines := viewer.Render(v, viewer.DefaultOptions(), viewer.NewOpenState())
	view := playground.View{Summary: "Block Number: 16", Lines: lines}

	out, err := RanderOutcome(playground.Outcome{
		OK:     true,
		Method: "eth_blockNumber",
		Record: &model.DispatchRecord{LatencyMs: 42},
	}, &view, false)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ <code>eth_blockNumber</code> · 42 ms")
	assert.Contains(t, out, "<b>Block Number: 16</b>")
	assert.Contains(t, out, "<pre>")
	assert.Contains(t, out, "dec: 16")
}

func TestRanderOutcomeFailures(t *testing.T) {
	out, err := RanderOutcome(playground.Outcome{Error: "HTTP 502", Method: "eth_chainId", EndpointURL: "https://x"}, nil, false)
	require.NoError(t, err)
	assert.Contains(t, out, "❌ <b>HTTP 502</b>")
	assert.Contains(t, out, "Endpoint: <code>https://x</code>")

	out, err = RanderOutcome(playground.Outcome{Timeout: true, Error: "Request timed out."}, nil, false)
	require.NoError(t, err)
	assert.Contains(t, out, "⚠️ Endpoint not responding")
	assert.Contains(t, out, "offline or overloaded")

	out, err = RanderOutcome(playground.Outcome{Timeout: true}, nil, true)
	require.NoError(t, err)
	assert.Contains(t, out, "⚠️ RPC endpoint unreachable")
	assert.Contains(t, out, "completely unreachable")
}

func TestRanderOutcomeSuccessWithoutTree(t *testing.T) {
	out, err := RanderOutcome(playground.Outcome{
		OK:          true,
		Method:      "eth_blockNumber",
		EndpointURL: "https://x",
		Record:      &model.DispatchRecord{LatencyMs: 7},
	}, nil, false)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ <code>eth_blockNumber</code> · 7 ms")
	assert.Contains(t, out, "Endpoint: <code>https://x</code>")
	assert.NotContains(t, out, "❌")
}

func TestRanderOutcomeEscapesHTML(t *testing.T) {
	out, err := RanderOutcome(playground.Outcome{Error: "bad <tag>"}, nil, false)
	require.NoError(t, err)
	assert.Contains(t, out, "bad &lt;tag&gt;")
}

func TestRanderHistory(t *testing.T) {
	out, err := RanderHistory(nil)
	require.NoError(t, err)
	assert.Contains(t, out, "No calls yet.")

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local).UnixMilli()
	out, err = RanderHistory([]model.DispatchRecord{
		{EndpointURL: "https://a", Method: "eth_chainId", OK: true, LatencyMs: 12, Timestamp: ts},
		{EndpointURL: "https://b", Method: "eth_call", OK: false, LatencyMs: 1500, Timestamp: ts},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "(2)")
	assert.Contains(t, out, "✅ <code>eth_chainId</code> · 12 ms · 2025-01-02 03:04:05")
	assert.Contains(t, out, "❌ <code>eth_call</code> · 1.50 s")
	assert.Less(t, strings.Index(out, "https://a"), strings.Index(out, "https://b"))
}

func TestRanderRequestAndSnippet(t *testing.T) {
	out, err := RanderRequest(playground.Snapshot{Family: "evm", Method: "eth_chainId", RequestText: "{}"})
	require.NoError(t, err)
	assert.Contains(t, out, "evm · <code>eth_chainId</code>")
	assert.Contains(t, out, `<pre><code class="language-json">{}</code></pre>`)

	out, err = RanderSnippet(snippet.Python, "import requests")
	require.NoError(t, err)
	assert.Contains(t, out, "<b>💻 Python</b>")
	assert.Contains(t, out, `class="language-python">import requests<`)
}

func TestRanderStartAndHelp(t *testing.T) {
	out, err := RanderStart("krainode_bot")
	require.NoError(t, err)
	assert.Contains(t, out, "https://t.me/krainode_bot")

	out, err = RanderHelp()
	require.NoError(t, err)
	assert.Contains(t, out, "/send")
	assert.Contains(t, out, "/custom &lt;url&gt;")
}

func TestRanderViewTruncatesTree(t *testing.T) {
	items := make([]string, 0, 600)
	for i := 0; i < 600; i++ {
		items = append(items, `"0x0000000000000000000000000000000000000000000000000000000000000001"`)
	}
	v, err := viewer.Parse([]byte("[" + strings.Join(items, ",") + "]"))
	require.NoError(t, err)
	lines := viewer.Render(v, viewer.AllExpanded(), viewer.NewOpenState())

	out, err := RanderView(playground.View{Method: "eth_getLogs", Lines: lines})
	require.NoError(t, err)
	assert.Contains(t, out, "✅ <code>eth_getLogs</code>\n<pre>")
	assert.Contains(t, out, "…</pre>")
	assert.Less(t, len([]rune(out)), 4096)
}
