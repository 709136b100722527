package store

import (
	"context"
	"errors"

	"github.com/krainode/rpcbot/model"
	"github.com/samber/lo"
)

// Preferences reads and writes one user's persisted playground state.
type Preferences struct {
	store  PreferenceStore
	userID int64
}

func ForUser(s PreferenceStore, userID int64) *Preferences {
	return &Preferences{store: s, userID: userID}
}

func (p *Preferences) key(name string) string {
	return UserKey(p.userID, name)
}

// LoadSelection returns whatever parts of the selection were saved. Missing
// keys stay empty.
func (p *Preferences) LoadSelection(ctx context.Context) (model.Selection, error) {
	var sel model.Selection
	fields := []struct {
		name string
		dst  *string
	}{
		{KeyChain, &sel.ChainName},
		{KeyNetwork, &sel.NetworkName},
		{KeyProvider, &sel.ProviderName},
		{KeyCustomURL, &sel.CustomURL},
		{KeyCustomHeaders, &sel.CustomHeaders},
	}
	var errs []error
	for _, f := range fields {
		v, ok, err := p.store.Get(ctx, p.key(f.name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			*f.dst = v
		}
	}
	return sel, errors.Join(errs...)
}

// SaveSelection writes chain, network and provider when set, and writes or
// removes the custom URL and headers.
func (p *Preferences) SaveSelection(ctx context.Context, sel model.Selection) error {
	var errs []error
	for name, v := range map[string]string{
		KeyChain:    sel.ChainName,
		KeyNetwork:  sel.NetworkName,
		KeyProvider: sel.ProviderName,
	} {
		if v == "" {
			continue
		}
		errs = append(errs, p.store.Set(ctx, p.key(name), v))
	}
	errs = append(errs,
		p.setOrRemove(ctx, KeyCustomURL, sel.CustomURL),
		p.setOrRemove(ctx, KeyCustomHeaders, sel.CustomHeaders),
	)
	return errors.Join(errs...)
}

func (p *Preferences) LoadRecent(ctx context.Context) ([]byte, bool, error) {
	v, ok, err := p.store.Get(ctx, p.key(KeyRecent))
	if err != nil || !ok {
		return nil, false, err
	}
	return []byte(v), true, nil
}

// SaveRecent writes the serialized log; an empty payload removes the key.
func (p *Preferences) SaveRecent(ctx context.Context, data []byte) error {
	return p.setOrRemove(ctx, KeyRecent, string(data))
}

func (p *Preferences) RemoveRecent(ctx context.Context) error {
	return p.store.Remove(ctx, p.key(KeyRecent))
}

// ClearAll removes every preference of the user.
func (p *Preferences) ClearAll(ctx context.Context) error {
	keys := lo.Map(AllKeys, func(name string, _ int) string {
		return p.key(name)
	})
	err := p.store.Remove(ctx, keys...)
	storeLog().Int64("userID", p.userID).Err(err).Msg("preferences cleared")
	return err
}

func (p *Preferences) setOrRemove(ctx context.Context, name, value string) error {
	if value == "" {
		return p.store.Remove(ctx, p.key(name))
	}
	return p.store.Set(ctx, p.key(name), value)
}
