package callback

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/registry"
	"github.com/krainode/rpcbot/rpc"
	"github.com/krainode/rpcbot/selection"
)

// clearInput is the reply that empties a custom field.
const clearInput = "-"

func inputValue(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == clearInput {
		return ""
	}
	return raw
}

// ApplyCustomURL sets or clears the custom endpoint from user text.
func ApplyCustomURL(ctx context.Context, b *bot.Bot, update *models.Update, raw string) {
	p, _, _ := userPlayground(ctx, update)
	url := inputValue(raw)
	if url != "" && !registry.IsHTTPURL(url) {
		alert(ctx, b, update, "A custom URL must start with http:// or https://.")
		return
	}
	ShowPlayground(ctx, b, update, p.ApplyCustomURL(ctx, url))
}

// ApplyCustomHeaders stores the header text as typed. Text that is not a
// JSON object is kept but nothing is sent for it.
func ApplyCustomHeaders(ctx context.Context, b *bot.Bot, update *models.Update, raw string) {
	p, _, _ := userPlayground(ctx, update)
	headers := inputValue(raw)
	if headers != "" && selection.ParseHeaders(headers) == nil {
		alert(ctx, b, update, "Headers are not a JSON object of strings and will not be sent.")
	}
	ShowPlayground(ctx, b, update, p.ApplyCustomHeaders(ctx, headers))
}

// ApplyRequestText replaces the request body. Invalid JSON is still
// accepted so it can be fixed later; sending reports it.
func ApplyRequestText(ctx context.Context, b *bot.Bot, update *models.Update, raw string) {
	p, _, _ := userPlayground(ctx, update)
	snap := p.EditRequest(raw)
	if _, err := rpc.ParseRequest(raw, snap.Method); err != nil {
		alert(ctx, b, update, err.Error())
	}
	ShowRequest(ctx, b, update, snap)
}
