package model

import "encoding/json"

func UnmarshalChainRegistry(data []byte) (ChainRegistry, error) {
	var r ChainRegistry
	err := json.Unmarshal(data, &r)
	return r, err
}

func (r *ChainRegistry) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ChainRegistry is the registry document served as chains.json.
type ChainRegistry struct {
	Chains []Chain `json:"chains"`
}

type Chain struct {
	Name     string    `json:"name"`
	Networks []Network `json:"networks"`
}

type Network struct {
	Name            string     `json:"name"`
	Providers       []Provider `json:"providers"`
	DefaultProvider string     `json:"defaultProvider"`
}

type Provider struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (r ChainRegistry) IsEmpty() bool {
	return len(r.Chains) == 0
}

func (r ChainRegistry) ChainNames() []string {
	names := make([]string, 0, len(r.Chains))
	for _, c := range r.Chains {
		names = append(names, c.Name)
	}
	return names
}

// FindChain returns the chain with the exact name.
func (r ChainRegistry) FindChain(name string) (Chain, bool) {
	for _, c := range r.Chains {
		if c.Name == name {
			return c, true
		}
	}
	return Chain{}, false
}

func (c Chain) FindNetwork(name string) (Network, bool) {
	for _, n := range c.Networks {
		if n.Name == name {
			return n, true
		}
	}
	return Network{}, false
}

func (n Network) FindProvider(name string) (Provider, bool) {
	for _, p := range n.Providers {
		if p.Name == name {
			return p, true
		}
	}
	return Provider{}, false
}

func (n Network) HasProvider(name string) bool {
	_, ok := n.FindProvider(name)
	return ok
}

// Default returns the name of the default provider, falling back to the
// first provider when DefaultProvider is blank.
func (n Network) Default() string {
	if n.DefaultProvider != "" {
		return n.DefaultProvider
	}
	if len(n.Providers) > 0 {
		return n.Providers[0].Name
	}
	return ""
}
