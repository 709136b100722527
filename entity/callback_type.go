package entity

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/spf13/cast"
)

type BOT_CALLBACK_DATA_CODE = string

const (
	PLAYGROUND     BOT_CALLBACK_DATA_CODE = "code::playground"
	CHAINS         BOT_CALLBACK_DATA_CODE = "code::chains"
	NETWORKS       BOT_CALLBACK_DATA_CODE = "code::networks"
	PROVIDERS      BOT_CALLBACK_DATA_CODE = "code::providers"
	METHODS        BOT_CALLBACK_DATA_CODE = "code::methods"
	PRESETS        BOT_CALLBACK_DATA_CODE = "code::presets"
	SEND           BOT_CALLBACK_DATA_CODE = "code::send"
	RETRY          BOT_CALLBACK_DATA_CODE = "code::retry"
	PROBE          BOT_CALLBACK_DATA_CODE = "code::probe"
	CUSTOM_URL     BOT_CALLBACK_DATA_CODE = "code::custom_url"
	CUSTOM_HEADERS BOT_CALLBACK_DATA_CODE = "code::custom_headers"
	CLEAR_CUSTOM   BOT_CALLBACK_DATA_CODE = "code::clear_custom"
	SHOW_REQUEST   BOT_CALLBACK_DATA_CODE = "code::show_request"
	EDIT_REQUEST   BOT_CALLBACK_DATA_CODE = "code::edit_request"
	RESPONSE       BOT_CALLBACK_DATA_CODE = "code::response"
	EXPAND_ALL     BOT_CALLBACK_DATA_CODE = "code::expand_all"
	COLLAPSE_ALL   BOT_CALLBACK_DATA_CODE = "code::collapse_all"
	RESET_VIEW     BOT_CALLBACK_DATA_CODE = "code::reset_view"
	HISTORY        BOT_CALLBACK_DATA_CODE = "code::history"
	CLEAR_HISTORY  BOT_CALLBACK_DATA_CODE = "code::clear_history"
	CLEAR_LOCAL    BOT_CALLBACK_DATA_CODE = "code::clear_local"
	SNIPPETS       BOT_CALLBACK_DATA_CODE = "code::snippets"
	HELP           BOT_CALLBACK_DATA_CODE = "code::help"

	_BOT_CALLBACK_DATA_CODE_COUNT = iota
)

var CallbackTextMap = map[BOT_CALLBACK_DATA_CODE]string{
	PLAYGROUND:     "🏠 Playground",
	CHAINS:         "⛓ Chain",
	NETWORKS:       "🌐 Network",
	PROVIDERS:      "🔌 Provider",
	METHODS:        "🧩 Method",
	PRESETS:        "⭐ Presets",
	SEND:           "▶️ Send",
	RETRY:          "🔁 Retry",
	PROBE:          "📡 Probe",
	CUSTOM_URL:     "✏️ Custom URL",
	CUSTOM_HEADERS: "🔑 Headers",
	CLEAR_CUSTOM:   "✖️ Clear custom URL",
	SHOW_REQUEST:   "📄 Request",
	EDIT_REQUEST:   "📝 Edit request",
	RESPONSE:       "🔎 Response",
	EXPAND_ALL:     "⊞ Expand all",
	COLLAPSE_ALL:   "⊟ Collapse all",
	RESET_VIEW:     "↺ Default view",
	HISTORY:        "🕘 Recent",
	CLEAR_HISTORY:  "🧹 Clear recent",
	CLEAR_LOCAL:    "🗑 Clear local data",
	SNIPPETS:       "💻 Code",
	HELP:           "❓ Help",
}

// check text map and code count
var _ = func() any {
	if len(CallbackTextMap) != _BOT_CALLBACK_DATA_CODE_COUNT {
		panic(fmt.Sprintf(
			"CallbackTextMap size mismatch: got %d, want %d",
			len(CallbackTextMap),
			_BOT_CALLBACK_DATA_CODE_COUNT,
		))
	}
	return nil
}()

// Prefixes of callbacks that carry a list index or a key. Telegram limits
// callback data to 64 bytes, so names are never embedded.
const (
	PICK_CHAIN   = "pick_chain::"
	PICK_NETWORK = "pick_net::"
	PICK_PROV    = "pick_prov::"
	PICK_METHOD  = "pick_method::"
	PICK_PRESET  = "pick_preset::"
	TOGGLE_NODE  = "toggle_node::"
	PICK_SNIPPET = "pick_snip::"
)

var indexedPrefixes = []string{PICK_CHAIN, PICK_NETWORK, PICK_PROV, PICK_METHOD, PICK_PRESET, TOGGLE_NODE}

// IsIndexed reports callback data that addresses a list entry by position.
func IsIndexed(data string) bool {
	for _, prefix := range indexedPrefixes {
		if strings.HasPrefix(data, prefix) {
			return true
		}
	}
	return false
}

type CallbackButton = models.InlineKeyboardButton

// build callback button
func GetCallbackButton(code BOT_CALLBACK_DATA_CODE) CallbackButton {
	return CallbackButton{
		CallbackData: code,
		Text:         CallbackTextMap[code],
	}
}

// IndexedData builds "<prefix><index>" callback data.
func IndexedData(prefix string, index int) string {
	return prefix + cast.ToString(index)
}

// split callback data
func SplitCallbackData(code BOT_CALLBACK_DATA_CODE) []string {
	return strings.Split(code, "::")
}

// CallbackArg returns the part after the last "::".
func CallbackArg(data string) string {
	parts := SplitCallbackData(data)
	return parts[len(parts)-1]
}

// CallbackIndex parses the index of an indexed callback; -1 when malformed.
func CallbackIndex(data string) int {
	idx, err := cast.ToIntE(CallbackArg(data))
	if err != nil || idx < 0 {
		return -1
	}
	return idx
}
