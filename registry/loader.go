package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/duke-git/lancet/v2/netutil"
	"github.com/krainode/rpcbot/logger"
	"github.com/krainode/rpcbot/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// LoadError is the banner shown when the registry could not be loaded.
const LoadError = "Failed to load available chains."

var ErrRegistryStatus = errors.New("registry request failed")

// Result is the outcome of a single registry load. Error is empty on success.
type Result struct {
	Registry model.ChainRegistry
	Error    string
}

func registryLog() *zerolog.Event {
	return log.Debug().Func(logger.WithCategory(logger.CategoryRegistry))
}

// Loader fetches the registry document once. Source is either an http(s)
// url or a path on disk.
type Loader struct {
	Source string
}

func NewLoader(source string) *Loader {
	return &Loader{Source: source}
}

// Load never returns an error to the caller: failures are reported through
// Result.Error and leave the registry empty.
func (l *Loader) Load(ctx context.Context) Result {
	data, err := l.fetch(ctx)
	if err != nil {
		log.Error().Err(err).Str("source", l.Source).Msg("failed to load chains")
		return Result{Error: LoadError}
	}

	reg := Parse(data)
	registryLog().Str("source", l.Source).Int("chains", len(reg.Chains)).Msg("chain registry loaded")
	return Result{Registry: reg}
}

// Parse reads a registry document. A missing or malformed "chains" array
// yields an empty registry.
func Parse(data []byte) model.ChainRegistry {
	if !gjson.ValidBytes(data) || !gjson.GetBytes(data, "chains").IsArray() {
		return model.ChainRegistry{}
	}
	reg, err := model.UnmarshalChainRegistry(data)
	if err != nil {
		return model.ChainRegistry{}
	}
	return Normalize(reg)
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsHTTPURL(l.Source) {
		return os.ReadFile(l.Source)
	}

	req := &netutil.HttpRequest{
		RawURL: l.Source,
		Method: "GET",
	}
	client := netutil.NewHttpClient()
	resp, err := client.SendRequest(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrRegistryStatus, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
