package selection

import (
	"strings"

	"github.com/krainode/rpcbot/model"
	"github.com/tidwall/gjson"
)

// ResolveNetwork finds the selected network, if any.
func ResolveNetwork(reg model.ChainRegistry, sel model.Selection) (model.Network, bool) {
	chain, ok := reg.FindChain(sel.ChainName)
	if !ok {
		return model.Network{}, false
	}
	return chain.FindNetwork(sel.NetworkName)
}

// EffectiveURL applies the precedence rule: a non-blank custom URL wins,
// then the selected provider, then the network's first provider.
func EffectiveURL(reg model.ChainRegistry, sel model.Selection) string {
	if custom := strings.TrimSpace(sel.CustomURL); custom != "" {
		return custom
	}
	net, ok := ResolveNetwork(reg, sel)
	if !ok || len(net.Providers) == 0 {
		return ""
	}
	if p, ok := net.FindProvider(sel.ProviderName); ok {
		return p.URL
	}
	return net.Providers[0].URL
}

// EffectiveHeaders returns the custom headers to send, or nil when no custom
// URL is in effect.
func EffectiveHeaders(sel model.Selection) map[string]string {
	if strings.TrimSpace(sel.CustomURL) == "" || sel.CustomHeaders == "" {
		return nil
	}
	return ParseHeaders(sel.CustomHeaders)
}

// ParseHeaders reads a JSON object of header values. Anything that is not a
// JSON object yields nil; malformed input is ignored rather than reported.
func ParseHeaders(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !gjson.Valid(raw) {
		return nil
	}
	res := gjson.Parse(raw)
	if !res.IsObject() {
		return nil
	}
	headers := make(map[string]string)
	res.ForEach(func(key, value gjson.Result) bool {
		headers[key.String()] = value.String()
		return true
	})
	return headers
}
