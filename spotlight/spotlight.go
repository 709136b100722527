package spotlight

import (
	_ "embed"
	"net/url"
	"strings"

	"github.com/krainode/rpcbot/model"
	"github.com/samber/lo"
	"gopkg.in/yaml.v2"
)

//go:embed providers.yaml
var providersRaw []byte

type Scope struct {
	Chain    string   `yaml:"chain"`
	Networks []string `yaml:"networks"`
}

type Match struct {
	Labels       []string `yaml:"labels"`
	HostIncludes []string `yaml:"host_includes"`
}

// ProviderMeta describes a provider that may be promoted for a network.
type ProviderMeta struct {
	Name      string  `yaml:"name"`
	Website   string  `yaml:"website"`
	Logo      string  `yaml:"logo"`
	Spotlight bool    `yaml:"spotlight"`
	Scopes    []Scope `yaml:"scopes"`
	Match     Match   `yaml:"match"`
}

var providers = mustParse(providersRaw)

func mustParse(data []byte) []ProviderMeta {
	metas, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return metas
}

func Parse(data []byte) ([]ProviderMeta, error) {
	var metas []ProviderMeta
	if err := yaml.Unmarshal(data, &metas); err != nil {
		return nil, err
	}
	return metas, nil
}

// Providers returns the built-in metadata in priority order.
func Providers() []ProviderMeta {
	return append([]ProviderMeta(nil), providers...)
}

// Find returns the first spotlight provider matching any provider of the
// network, walking the network's providers in order.
func Find(chainName, networkName string, rpcs []model.Provider) (ProviderMeta, bool) {
	return FindIn(providers, chainName, networkName, rpcs)
}

func FindIn(metas []ProviderMeta, chainName, networkName string, rpcs []model.Provider) (ProviderMeta, bool) {
	candidates := lo.Filter(metas, func(m ProviderMeta, _ int) bool {
		return m.Spotlight && m.inScope(chainName, networkName)
	})
	for _, rpc := range rpcs {
		if hit, ok := lo.Find(candidates, func(m ProviderMeta) bool {
			return m.matches(rpc)
		}); ok {
			return hit, true
		}
	}
	return ProviderMeta{}, false
}

func (m ProviderMeta) matches(rpc model.Provider) bool {
	label := strings.ToLower(rpc.Name)
	byLabel := lo.ContainsBy(m.Match.Labels, func(l string) bool {
		return strings.ToLower(l) == label
	})
	if byLabel {
		return true
	}
	host := hostnameOf(rpc.URL)
	return lo.ContainsBy(m.Match.HostIncludes, func(sub string) bool {
		return strings.Contains(host, strings.ToLower(sub))
	})
}

// an unscoped provider applies everywhere; a scope without networks covers
// the whole chain.
func (m ProviderMeta) inScope(chainName, networkName string) bool {
	if len(m.Scopes) == 0 {
		return true
	}
	chain := normalize(chainName)
	network := normalize(networkName)
	if chain == "" || network == "" {
		return false
	}
	return lo.ContainsBy(m.Scopes, func(s Scope) bool {
		if normalize(s.Chain) != chain {
			return false
		}
		if len(s.Networks) == 0 {
			return true
		}
		return lo.ContainsBy(s.Networks, func(n string) bool {
			return normalize(n) == network
		})
	})
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func hostnameOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
