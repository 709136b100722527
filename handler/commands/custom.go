package commands

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/handler/callback"
	"github.com/krainode/rpcbot/store"
	"github.com/krainode/rpcbot/util"
)

func commandArgs(update *models.Update) string {
	_, args := util.SplitCommand(update.Message.Text, store.GetEnv(store.BOT_USERNAME))
	return args
}

// CustomHandler takes the URL inline or asks for it.
func CustomHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if args := commandArgs(update); args != "" {
		callback.ApplyCustomURL(ctx, b, update, args)
		return
	}
	callback.CustomURLHandler(ctx, b, update)
}

func HeadersHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if args := commandArgs(update); args != "" {
		callback.ApplyCustomHeaders(ctx, b, update, args)
		return
	}
	callback.CustomHeadersHandler(ctx, b, update)
}
