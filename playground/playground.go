package playground

import (
	"context"
	"sync"

	"github.com/krainode/rpcbot/history"
	"github.com/krainode/rpcbot/logger"
	"github.com/krainode/rpcbot/methods"
	"github.com/krainode/rpcbot/model"
	"github.com/krainode/rpcbot/rpc"
	"github.com/krainode/rpcbot/selection"
	"github.com/krainode/rpcbot/spotlight"
	"github.com/krainode/rpcbot/store"
	"github.com/krainode/rpcbot/viewer"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Deps is what every playground shares: the registry loaded at start up,
// the dispatcher and the preference store.
type Deps struct {
	Registry      model.ChainRegistry
	RegistryError string
	Dispatcher    *rpc.Dispatcher
	Store         store.PreferenceStore
}

// Playground is one user's session. State changes are serialized by mu;
// endpoint calls run outside it so sends may overlap.
type Playground struct {
	mu sync.Mutex

	userID     int64
	reg        model.ChainRegistry
	regErr     string
	dispatcher *rpc.Dispatcher
	prefs      *store.Preferences

	state    selection.State
	builder  *rpc.Builder
	history  *history.Log
	response *Response
	viewOpts viewer.Options
	open     *viewer.OpenState
}

func playgroundLog() *zerolog.Event {
	return log.Debug().Func(logger.WithCategory(logger.CategorySelection))
}

// New rehydrates a user's preferences and converges them against the
// registry. Store failures leave the affected preferences unset.
func New(ctx context.Context, userID int64, deps Deps) *Playground {
	if deps.Store == nil {
		deps.Store = store.NewMemoryStore()
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = rpc.NewDispatcher(0, 0)
	}
	prefs := store.ForUser(deps.Store, userID)

	sel, err := prefs.LoadSelection(ctx)
	if err != nil {
		log.Error().Func(logger.WithCategory(logger.CategoryStore)).Err(err).Int64("userID", userID).Msg("failed to load preferences")
	}
	recent, _, err := prefs.LoadRecent(ctx)
	if err != nil {
		log.Error().Func(logger.WithCategory(logger.CategoryStore)).Err(err).Int64("userID", userID).Msg("failed to load recents")
	}

	p := &Playground{
		userID:     userID,
		reg:        deps.Registry,
		regErr:     deps.RegistryError,
		dispatcher: deps.Dispatcher,
		prefs:      prefs,
		history:    history.New(prefs, recent),
		viewOpts:   viewer.DefaultOptions(),
		open:       viewer.NewOpenState(),
	}
	p.state = selection.Reduce(p.reg, selection.NewState(sel), selection.RegistryLoaded{})
	p.builder = rpc.NewBuilder(p.state.Selection.ChainName)
	p.persist(ctx)
	playgroundLog().Int64("userID", userID).Str("chain", p.state.Selection.ChainName).Int("recent", p.history.Len()).Msg("playground ready")
	return p
}

func (p *Playground) UserID() int64 {
	return p.userID
}

// apply runs one selection event and keeps the request builder on the
// resulting chain.
func (p *Playground) apply(ctx context.Context, ev selection.Event) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = selection.Reduce(p.reg, p.state, ev)
	p.builder.SetChain(p.state.Selection.ChainName)
	p.persist(ctx)
	return p.snapshot()
}

func (p *Playground) SelectChain(ctx context.Context, name string) Snapshot {
	return p.apply(ctx, selection.ChainSelected{Name: name})
}

func (p *Playground) SelectNetwork(ctx context.Context, name string) Snapshot {
	return p.apply(ctx, selection.NetworkSelected{Name: name})
}

func (p *Playground) SelectProvider(ctx context.Context, name string) Snapshot {
	return p.apply(ctx, selection.ProviderSelected{Name: name})
}

func (p *Playground) ApplyCustomURL(ctx context.Context, url string) Snapshot {
	return p.apply(ctx, selection.CustomURLApplied{URL: url})
}

func (p *Playground) ApplyCustomHeaders(ctx context.Context, headers string) Snapshot {
	return p.apply(ctx, selection.CustomHeadersApplied{Headers: headers})
}

// ClearLocalData removes every stored preference and the recent log, then
// points the selection back at the first chain and network. The whole
// sequence runs under mu so no selection change lands in between.
func (p *Playground) ClearLocalData(ctx context.Context) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.prefs.ClearAll(ctx); err != nil {
		log.Error().Func(logger.WithCategory(logger.CategoryStore)).Err(err).Int64("userID", p.userID).Msg("failed to clear preferences")
	}
	p.history.Clear(ctx)

	p.state = selection.Reduce(p.reg, p.state, selection.LocalDataCleared{})
	p.builder.SetChain(p.state.Selection.ChainName)
	p.response = nil
	p.open.Reset()
	return p.snapshot()
}

// SelectMethod loads a template of the current family.
func (p *Playground) SelectMethod(name string) (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ok := p.builder.SetMethod(name)
	return p.snapshot(), ok
}

// ApplyPreset loads the preset with the given name.
func (p *Playground) ApplyPreset(name string) (Snapshot, bool) {
	preset, ok := lo.Find(methods.Presets(), func(pr methods.Preset) bool {
		return pr.Name == name
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if ok {
		p.builder.Preset(preset.Method, preset.Params)
	}
	return p.snapshot(), ok
}

// EditRequest replaces the request text verbatim.
func (p *Playground) EditRequest(text string) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.builder.Edit(text)
	return p.snapshot()
}

func (p *Playground) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

func (p *Playground) Recent() []model.DispatchRecord {
	return p.history.Entries()
}

func (p *Playground) ClearRecent(ctx context.Context) {
	p.history.Clear(ctx)
}

// persist writes the selection; failures are logged only.
func (p *Playground) persist(ctx context.Context) {
	if err := p.prefs.SaveSelection(ctx, p.state.Selection); err != nil {
		log.Error().Func(logger.WithCategory(logger.CategoryStore)).Err(err).Int64("userID", p.userID).Msg("failed to save preferences")
	}
}

// Snapshot is a read-only copy of everything needed to draw the playground.
type Snapshot struct {
	Selection     model.Selection
	Probe         *model.ProbeResult
	EffectiveURL  string
	RegistryError string

	Chains    []string
	Networks  []string
	Providers []model.Provider
	Spotlight *spotlight.ProviderMeta

	Family      methods.Family
	Method      string
	Methods     []string
	RequestText string
	RecentCount int
}

func (p *Playground) snapshot() Snapshot {
	sel := p.state.Selection
	snap := Snapshot{
		Selection:     sel,
		EffectiveURL:  selection.EffectiveURL(p.reg, sel),
		RegistryError: p.regErr,
		Chains:        p.reg.ChainNames(),
		Family:        p.builder.Family(),
		Method:        p.builder.Method(),
		Methods:       p.builder.Methods(),
		RequestText:   p.builder.Text(),
		RecentCount:   p.history.Len(),
	}
	if p.state.Probe != nil {
		probe := *p.state.Probe
		snap.Probe = &probe
	}
	if chain, ok := p.reg.FindChain(sel.ChainName); ok {
		for _, n := range chain.Networks {
			snap.Networks = append(snap.Networks, n.Name)
		}
	}
	if net, ok := selection.ResolveNetwork(p.reg, sel); ok {
		snap.Providers = append([]model.Provider(nil), net.Providers...)
		if meta, ok := spotlight.Find(sel.ChainName, sel.NetworkName, net.Providers); ok {
			snap.Spotlight = &meta
		}
	}
	return snap
}
