package selection

import (
	"github.com/krainode/rpcbot/logger"
	"github.com/krainode/rpcbot/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State is everything the selection rules look at. PreviousNetwork tracks the
// last network the provider was synchronised against; networks are identified
// by name.
type State struct {
	Selection model.Selection
	Probe     *model.ProbeResult

	InitialSyncPending bool
	PreviousNetwork    string
}

// NewState starts from a (possibly rehydrated) selection with the initial
// provider sync still pending.
func NewState(sel model.Selection) State {
	return State{Selection: sel, InitialSyncPending: true}
}

func selectionLog() *zerolog.Event {
	return log.Trace().Func(logger.WithCategory(logger.CategorySelection))
}

// Reduce applies ev and then the convergence rules until the state settles.
func Reduce(reg model.ChainRegistry, st State, ev Event) State {
	if ev != nil {
		st = ev.apply(reg, st)
	}
	for i := 0; i < maxPasses; i++ {
		next := converge(reg, st)
		if equal(next, st) {
			break
		}
		st = next
	}
	selectionLog().
		Str("chain", st.Selection.ChainName).
		Str("network", st.Selection.NetworkName).
		Str("provider", st.Selection.ProviderName).
		Bool("custom", st.Selection.CustomURL != "").
		Msg("selection settled")
	return st
}

// the rules settle in at most two passes; the bound only guards a broken
// registry from looping.
const maxPasses = 4

func converge(reg model.ChainRegistry, st State) State {
	sel := &st.Selection

	if reg.IsEmpty() {
		sel.ChainName = ""
		sel.NetworkName = ""
		sel.ProviderName = ""
		return st
	}

	chain, ok := reg.FindChain(sel.ChainName)
	if !ok {
		chain = reg.Chains[0]
		sel.ChainName = chain.Name
	}

	if len(chain.Networks) == 0 {
		sel.NetworkName = ""
		sel.ProviderName = ""
		return st
	}
	net, ok := chain.FindNetwork(sel.NetworkName)
	if !ok {
		net = chain.Networks[0]
		sel.NetworkName = net.Name
	}

	return syncProvider(net, st)
}

func syncProvider(net model.Network, st State) State {
	sel := &st.Selection
	defaultName := net.Default()

	if st.InitialSyncPending {
		st.InitialSyncPending = false
		if sel.ProviderName == "" || !net.HasProvider(sel.ProviderName) {
			sel.ProviderName = defaultName
		}
		st.PreviousNetwork = net.Name
		return st
	}

	if st.PreviousNetwork != net.Name {
		st.PreviousNetwork = net.Name
		sel.ProviderName = defaultName
		sel.CustomURL = ""
		sel.CustomHeaders = ""
		st.Probe = nil
		return st
	}

	if !net.HasProvider(sel.ProviderName) {
		sel.ProviderName = defaultName
	}
	return st
}

func equal(a, b State) bool {
	if a.Selection != b.Selection ||
		a.InitialSyncPending != b.InitialSyncPending ||
		a.PreviousNetwork != b.PreviousNetwork {
		return false
	}
	if a.Probe == nil || b.Probe == nil {
		return a.Probe == b.Probe
	}
	return *a.Probe == *b.Probe
}
