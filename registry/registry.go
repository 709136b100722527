package registry

import (
	"strings"

	"github.com/krainode/rpcbot/model"
	"github.com/samber/lo"
)

// IsHTTPURL reports whether url uses the http or https scheme.
func IsHTTPURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// Normalize drops providers without an http(s) url, networks without
// providers and chains without networks, and pins every network's default
// provider to its first provider. Authored order is kept.
func Normalize(r model.ChainRegistry) model.ChainRegistry {
	chains := make([]model.Chain, 0, len(r.Chains))
	for _, c := range r.Chains {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		networks := make([]model.Network, 0, len(c.Networks))
		for _, n := range c.Networks {
			providers := lo.Filter(n.Providers, func(p model.Provider, _ int) bool {
				return p.Name != "" && IsHTTPURL(p.URL)
			})
			providers = lo.UniqBy(providers, func(p model.Provider) string { return p.Name })
			if len(providers) == 0 {
				continue
			}
			networks = append(networks, model.Network{
				Name:            n.Name,
				Providers:       providers,
				DefaultProvider: providers[0].Name,
			})
		}
		if len(networks) == 0 {
			continue
		}
		chains = append(chains, model.Chain{Name: c.Name, Networks: networks})
	}
	chains = lo.UniqBy(chains, func(c model.Chain) string { return c.Name })
	return model.ChainRegistry{Chains: chains}
}
