package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/krainode/rpcbot/playground"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// InputState is the free-text input a user was last asked for.
type InputState string

const (
	AwaitCustomURL     InputState = "custom_url"
	AwaitCustomHeaders InputState = "custom_headers"
	AwaitRequestText   InputState = "request_text"
)

// pending prompts expire if the user never answers them
const pendingTTL = 10 * time.Minute

// Pending is a ForceReply prompt waiting for the user's answer.
type Pending struct {
	State     InputState
	MessageID int
}

type SessionManager struct {
	deps playground.Deps

	sessions sync.Map
	pending  *cache.Cache
}

var sessionManager *SessionManager
var once sync.Once

func NewSessionManager(deps playground.Deps) *SessionManager {
	return &SessionManager{
		deps:    deps,
		pending: cache.New(pendingTTL, 2*pendingTTL),
	}
}

// Init sets the shared dependencies; only the first call counts.
func Init(deps playground.Deps) *SessionManager {
	once.Do(func() {
		sessionManager = NewSessionManager(deps)
	})
	return sessionManager
}

func GetSessionManager() *SessionManager {
	return Init(playground.Deps{})
}

// Playground returns the user's playground, creating and rehydrating it
// on first use.
func (sm *SessionManager) Playground(ctx context.Context, userID int64) *playground.Playground {
	if v, ok := sm.sessions.Load(userID); ok {
		return v.(*playground.Playground)
	}

	// Rehydration reads the store, so it runs unlocked; racing creators
	// for the same user all get whichever playground was stored first.
	p := playground.New(ctx, userID, sm.deps)
	v, loaded := sm.sessions.LoadOrStore(userID, p)
	if !loaded {
		log.Debug().Int64("userID", userID).Msg("session created")
	}
	return v.(*playground.Playground)
}

func (sm *SessionManager) Delete(userID int64) {
	log.Debug().Int64("userID", userID).Msg("session delete")
	sm.sessions.Delete(userID)
	sm.pending.Delete(pendingKey(userID))
}

func pendingKey(userID int64) string {
	return fmt.Sprintf("%d::%s", userID, "pending")
}

// SetPending remembers which prompt the user's next reply answers.
// A newer prompt replaces the older one.
func (sm *SessionManager) SetPending(userID int64, state InputState, messageID int) {
	log.Debug().Str("state", string(state)).Int64("userID", userID).Msg("session set pending")
	sm.pending.SetDefault(pendingKey(userID), Pending{State: state, MessageID: messageID})
}

func (sm *SessionManager) Pending(userID int64) (Pending, bool) {
	v, ok := sm.pending.Get(pendingKey(userID))
	if !ok {
		return Pending{}, false
	}
	return v.(Pending), true
}

// ConsumePending returns and clears the prompt answered by a reply to
// replyTo. A replyTo of 0 accepts any prompt.
func (sm *SessionManager) ConsumePending(userID int64, replyTo int) (InputState, bool) {
	p, ok := sm.Pending(userID)
	if !ok {
		return "", false
	}
	if replyTo != 0 && p.MessageID != replyTo {
		return "", false
	}
	sm.pending.Delete(pendingKey(userID))
	return p.State, true
}
