package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/krainode/rpcbot/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// KeyPrefix namespaces every persisted preference.
const KeyPrefix = "krainode:"

const (
	KeyChain         = "lastChain"
	KeyNetwork       = "lastNetwork"
	KeyProvider      = "lastProvider"
	KeyCustomURL     = "customUrl"
	KeyCustomHeaders = "customHeaders"
	KeyRecent        = "recent"
)

// AllKeys lists the preference names removed by a clear.
var AllKeys = []string{KeyChain, KeyNetwork, KeyProvider, KeyCustomURL, KeyCustomHeaders, KeyRecent}

var ErrStoreNotSet = errors.New("preference store is not set")

// PreferenceStore is a durable string key/value store. A missing key is
// reported through ok=false, never as an error.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

func storeLog() *zerolog.Event {
	return log.Debug().Func(logger.WithCategory(logger.CategoryStore))
}

// UserKey scopes a preference name to one user.
func UserKey(userID int64, name string) string {
	return fmt.Sprintf("%s%s:%d", KeyPrefix, name, userID)
}
