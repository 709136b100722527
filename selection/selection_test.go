package selection

import (
	"testing"

	"github.com/krainode/rpcbot/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() model.ChainRegistry {
	return model.ChainRegistry{Chains: []model.Chain{
		{Name: "ethereum", Networks: []model.Network{
			{Name: "mainnet", DefaultProvider: "A", Providers: []model.Provider{
				{Name: "A", URL: "https://a"},
				{Name: "B", URL: "https://b"},
			}},
			{Name: "sepolia", DefaultProvider: "S", Providers: []model.Provider{
				{Name: "S", URL: "https://s"},
				{Name: "T", URL: "https://t"},
			}},
		}},
		{Name: "base", Networks: []model.Network{
			{Name: "mainnet", DefaultProvider: "X", Providers: []model.Provider{
				{Name: "X", URL: "https://x"},
				{Name: "B", URL: "https://base-b"},
			}},
		}},
		{Name: "avail", Networks: []model.Network{
			{Name: "turing", DefaultProvider: "Avail", Providers: []model.Provider{
				{Name: "Avail", URL: "https://turing"},
			}},
		}},
	}}
}

func loaded(t *testing.T, sel model.Selection) State {
	t.Helper()
	return Reduce(testRegistry(), NewState(sel), RegistryLoaded{})
}

func TestEmptyRegistryClearsSelection(t *testing.T) {
	st := Reduce(model.ChainRegistry{}, NewState(model.Selection{ChainName: "ethereum", NetworkName: "mainnet", ProviderName: "A"}), RegistryLoaded{})
	assert.Equal(t, "", st.Selection.ChainName)
	assert.Equal(t, "", st.Selection.NetworkName)
	assert.Equal(t, "", st.Selection.ProviderName)
}

func TestInitialSyncPicksFirstChainNetworkAndDefaultProvider(t *testing.T) {
	st := loaded(t, model.Selection{})
	assert.Equal(t, "ethereum", st.Selection.ChainName)
	assert.Equal(t, "mainnet", st.Selection.NetworkName)
	assert.Equal(t, "A", st.Selection.ProviderName)
	assert.False(t, st.InitialSyncPending)
	assert.Equal(t, "mainnet", st.PreviousNetwork)
}

func TestInitialSyncKeepsRehydratedState(t *testing.T) {
	st := loaded(t, model.Selection{
		ChainName:     "ethereum",
		NetworkName:   "sepolia",
		ProviderName:  "T",
		CustomURL:     "https://custom",
		CustomHeaders: `{"x-api-key":"k"}`,
	})
	assert.Equal(t, "sepolia", st.Selection.NetworkName)
	assert.Equal(t, "T", st.Selection.ProviderName)
	assert.Equal(t, "https://custom", st.Selection.CustomURL)
	assert.Equal(t, `{"x-api-key":"k"}`, st.Selection.CustomHeaders)
}

func TestInitialSyncFixesInvalidProvider(t *testing.T) {
	st := loaded(t, model.Selection{ChainName: "ethereum", NetworkName: "mainnet", ProviderName: "gone", CustomURL: "https://custom"})
	assert.Equal(t, "A", st.Selection.ProviderName)
	assert.Equal(t, "https://custom", st.Selection.CustomURL)
}

func TestUnknownChainAndNetworkFallBack(t *testing.T) {
	st := loaded(t, model.Selection{ChainName: "solana", NetworkName: "devnet"})
	assert.Equal(t, "ethereum", st.Selection.ChainName)
	assert.Equal(t, "mainnet", st.Selection.NetworkName)

	st = loaded(t, model.Selection{ChainName: "avail", NetworkName: "mainnet"})
	assert.Equal(t, "avail", st.Selection.ChainName)
	assert.Equal(t, "turing", st.Selection.NetworkName)
	assert.Equal(t, "Avail", st.Selection.ProviderName)
}

func TestNetworkSwitchResetsCustomState(t *testing.T) {
	reg := testRegistry()
	st := loaded(t, model.Selection{})
	st = Reduce(reg, st, ProviderSelected{Name: "B"})
	st = Reduce(reg, st, CustomURLApplied{URL: "https://custom"})
	st = Reduce(reg, st, CustomHeadersApplied{Headers: `{"a":"b"}`})
	st = Reduce(reg, st, ProbeCompleted{Result: model.ProbeResult{OK: true, Label: "OK"}})
	require.NotNil(t, st.Probe)

	st = Reduce(reg, st, NetworkSelected{Name: "sepolia"})
	assert.Equal(t, "S", st.Selection.ProviderName)
	assert.Equal(t, "", st.Selection.CustomURL)
	assert.Equal(t, "", st.Selection.CustomHeaders)
	assert.Nil(t, st.Probe)
}

func TestChainSwitchKeepsCustomURLWhenNetworkNameSurvives(t *testing.T) {
	reg := testRegistry()
	st := loaded(t, model.Selection{})
	st = Reduce(reg, st, ProviderSelected{Name: "B"})
	st = Reduce(reg, st, CustomURLApplied{URL: " https://custom "})
	assert.Equal(t, "https://custom", st.Selection.CustomURL)

	st = Reduce(reg, st, ChainSelected{Name: "base"})
	assert.Equal(t, "base", st.Selection.ChainName)
	assert.Equal(t, "mainnet", st.Selection.NetworkName)
	assert.Equal(t, "B", st.Selection.ProviderName)
	assert.Equal(t, "https://custom", st.Selection.CustomURL)

	st = Reduce(reg, st, ChainSelected{Name: "avail"})
	assert.Equal(t, "turing", st.Selection.NetworkName)
	assert.Equal(t, "Avail", st.Selection.ProviderName)
	assert.Equal(t, "", st.Selection.CustomURL)
}

func TestChainSwitchInvalidProviderFallsBackWithoutClearingCustom(t *testing.T) {
	reg := testRegistry()
	st := loaded(t, model.Selection{})
	st = Reduce(reg, st, CustomURLApplied{URL: "https://custom"})

	// "A" does not exist on base/mainnet
	st = Reduce(reg, st, ChainSelected{Name: "base"})
	assert.Equal(t, "X", st.Selection.ProviderName)
	assert.Equal(t, "https://custom", st.Selection.CustomURL)
}

func TestInvalidProviderSelectionFallsBack(t *testing.T) {
	reg := testRegistry()
	st := loaded(t, model.Selection{})
	st = Reduce(reg, st, ProviderSelected{Name: "nope"})
	assert.Equal(t, "A", st.Selection.ProviderName)
}

func TestBlankCustomURLDropsHeadersAndProbe(t *testing.T) {
	reg := testRegistry()
	st := loaded(t, model.Selection{})
	st = Reduce(reg, st, CustomURLApplied{URL: "https://custom"})
	st = Reduce(reg, st, CustomHeadersApplied{Headers: `{"a":"b"}`})
	st = Reduce(reg, st, ProbeCompleted{Result: model.ProbeResult{Label: "Timeout"}})

	st = Reduce(reg, st, CustomURLApplied{URL: "   "})
	assert.Equal(t, "", st.Selection.CustomURL)
	assert.Equal(t, "", st.Selection.CustomHeaders)
	assert.Nil(t, st.Probe)
}

func TestLocalDataClearedResetsToFirstChain(t *testing.T) {
	reg := testRegistry()
	st := loaded(t, model.Selection{ChainName: "avail"})
	st = Reduce(reg, st, CustomURLApplied{URL: "https://custom"})

	st = Reduce(reg, st, LocalDataCleared{})
	assert.Equal(t, model.Selection{ChainName: "ethereum", NetworkName: "mainnet", ProviderName: "A"}, st.Selection)
	assert.Nil(t, st.Probe)
	assert.False(t, st.InitialSyncPending)
}

func TestSelectionConvergence(t *testing.T) {
	reg := testRegistry()
	events := []Event{
		ChainSelected{Name: "base"},
		NetworkSelected{Name: "nope"},
		ChainSelected{Name: "nope"},
		ProviderSelected{Name: "T"},
		NetworkSelected{Name: "sepolia"},
		ProviderSelected{Name: "T"},
		ChainSelected{Name: "avail"},
		LocalDataCleared{},
		NetworkSelected{Name: "sepolia"},
	}
	st := loaded(t, model.Selection{})
	for _, ev := range events {
		st = Reduce(reg, st, ev)

		chain, ok := reg.FindChain(st.Selection.ChainName)
		require.True(t, ok, "chain %q", st.Selection.ChainName)
		net, ok := chain.FindNetwork(st.Selection.NetworkName)
		require.True(t, ok, "network %q", st.Selection.NetworkName)
		assert.True(t, net.HasProvider(st.Selection.ProviderName), "provider %q", st.Selection.ProviderName)
	}
}

func TestEffectiveURLPrecedence(t *testing.T) {
	reg := testRegistry()
	st := loaded(t, model.Selection{})
	st = Reduce(reg, st, ProviderSelected{Name: "B"})
	assert.Equal(t, "https://b", EffectiveURL(reg, st.Selection))

	st = Reduce(reg, st, CustomURLApplied{URL: "https://custom"})
	assert.Equal(t, "https://custom", EffectiveURL(reg, st.Selection))

	st = Reduce(reg, st, CustomURLApplied{URL: ""})
	assert.Equal(t, "https://b", EffectiveURL(reg, st.Selection))
}

func TestEffectiveURLFallsBackToFirstProvider(t *testing.T) {
	reg := testRegistry()
	sel := model.Selection{ChainName: "ethereum", NetworkName: "mainnet", ProviderName: "missing"}
	assert.Equal(t, "https://a", EffectiveURL(reg, sel))

	assert.Equal(t, "", EffectiveURL(reg, model.Selection{ChainName: "nope"}))
	assert.Equal(t, "", EffectiveURL(model.ChainRegistry{}, model.Selection{}))
}

func TestEffectiveHeaders(t *testing.T) {
	sel := model.Selection{CustomHeaders: `{"x-api-key":"secret","n":1}`}
	assert.Nil(t, EffectiveHeaders(sel))

	sel.CustomURL = "https://custom"
	assert.Equal(t, map[string]string{"x-api-key": "secret", "n": "1"}, EffectiveHeaders(sel))

	sel.CustomHeaders = `{"broken":`
	assert.Nil(t, EffectiveHeaders(sel))
}

func TestParseHeaders(t *testing.T) {
	assert.Nil(t, ParseHeaders(""))
	assert.Nil(t, ParseHeaders("not json"))
	assert.Nil(t, ParseHeaders(`["a"]`))
	assert.Nil(t, ParseHeaders(`"str"`))
	assert.Equal(t, map[string]string{"Authorization": "Bearer x"}, ParseHeaders(` {"Authorization":"Bearer x"} `))
}
