package selection

import (
	"strings"

	"github.com/krainode/rpcbot/model"
)

// Event is a user action or a registry change fed to Reduce.
type Event interface {
	apply(reg model.ChainRegistry, st State) State
}

// RegistryLoaded carries no data: the registry passed to Reduce is the new one.
type RegistryLoaded struct{}

type ChainSelected struct{ Name string }

type NetworkSelected struct{ Name string }

type ProviderSelected struct{ Name string }

// CustomURLApplied sets the custom endpoint. A blank URL also drops custom
// headers and the last probe result.
type CustomURLApplied struct{ URL string }

type CustomHeadersApplied struct{ Headers string }

type ProbeCompleted struct{ Result model.ProbeResult }

// LocalDataCleared resets to the registry's first chain and network and
// re-arms the initial provider sync.
type LocalDataCleared struct{}

func (RegistryLoaded) apply(_ model.ChainRegistry, st State) State { return st }

func (e ChainSelected) apply(_ model.ChainRegistry, st State) State {
	st.Selection.ChainName = e.Name
	return st
}

func (e NetworkSelected) apply(_ model.ChainRegistry, st State) State {
	st.Selection.NetworkName = e.Name
	return st
}

func (e ProviderSelected) apply(_ model.ChainRegistry, st State) State {
	st.Selection.ProviderName = e.Name
	return st
}

func (e CustomURLApplied) apply(_ model.ChainRegistry, st State) State {
	trimmed := strings.TrimSpace(e.URL)
	st.Selection.CustomURL = trimmed
	if trimmed == "" {
		st.Probe = nil
		st.Selection.CustomHeaders = ""
	}
	return st
}

func (e CustomHeadersApplied) apply(_ model.ChainRegistry, st State) State {
	st.Selection.CustomHeaders = strings.TrimSpace(e.Headers)
	return st
}

func (e ProbeCompleted) apply(_ model.ChainRegistry, st State) State {
	res := e.Result
	st.Probe = &res
	return st
}

func (LocalDataCleared) apply(reg model.ChainRegistry, st State) State {
	sel := model.Selection{}
	if !reg.IsEmpty() {
		sel.ChainName = reg.Chains[0].Name
		if len(reg.Chains[0].Networks) > 0 {
			sel.NetworkName = reg.Chains[0].Networks[0].Name
		}
	}
	return State{Selection: sel, InitialSyncPending: true}
}
