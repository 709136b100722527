package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/handler/callback"
	"github.com/krainode/rpcbot/registry"
	"github.com/krainode/rpcbot/session"
	"github.com/krainode/rpcbot/util"
)

// TextHandler answers pending prompts first, then treats JSON as a new
// request body and an http(s) URL as a custom endpoint.
func TextHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	if update.Message.Chat.Type != "private" {
		return
	}

	// check if it is command
	if util.IsCommand(update.Message.Text) {
		CommandHandler(ctx, b, update)
		return
	}

	chatID := util.EffectId(update)
	text := update.Message.Text
	replyTo := 0
	if update.Message.ReplyToMessage != nil {
		replyTo = update.Message.ReplyToMessage.ID
	}

	if state, ok := session.GetSessionManager().ConsumePending(chatID, replyTo); ok {
		switch state {
		case session.AwaitCustomURL:
			callback.ApplyCustomURL(ctx, b, update, text)
		case session.AwaitCustomHeaders:
			callback.ApplyCustomHeaders(ctx, b, update, text)
		case session.AwaitRequestText:
			callback.ApplyRequestText(ctx, b, update, text)
		}
		return
	}

	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		callback.ApplyRequestText(ctx, b, update, trimmed)
	case registry.IsHTTPURL(trimmed):
		callback.ApplyCustomURL(ctx, b, update, trimmed)
	default:
		callback.PlaygroundHandler(ctx, b, update)
	}
}
