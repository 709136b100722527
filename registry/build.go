package registry

import (
	"fmt"

	"github.com/krainode/rpcbot/model"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// BuildFromYAML converts the chains.yaml source of truth
// (chain -> network -> providerName: url) into a registry. Authored order is
// kept and the first provider of a network is its default.
func BuildFromYAML(src []byte) (model.ChainRegistry, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return model.ChainRegistry{}, fmt.Errorf("parse chains yaml: %w", err)
	}

	chains := make([]model.Chain, 0, len(doc))
	for _, chainItem := range doc {
		networks := make([]model.Network, 0)
		for _, netItem := range asMapSlice(chainItem.Value) {
			providers := make([]model.Provider, 0)
			for _, provItem := range asMapSlice(netItem.Value) {
				url, ok := provItem.Value.(string)
				if !ok || !IsHTTPURL(url) {
					continue
				}
				providers = append(providers, model.Provider{
					Name: cast.ToString(provItem.Key),
					URL:  url,
				})
			}
			if len(providers) == 0 {
				continue
			}
			networks = append(networks, model.Network{
				Name:            cast.ToString(netItem.Key),
				Providers:       providers,
				DefaultProvider: providers[0].Name,
			})
		}
		if len(networks) > 0 {
			chains = append(chains, model.Chain{Name: cast.ToString(chainItem.Key), Networks: networks})
		}
	}

	return model.ChainRegistry{Chains: chains}, nil
}

func asMapSlice(v any) yaml.MapSlice {
	ms, _ := v.(yaml.MapSlice)
	return ms
}
