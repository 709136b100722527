package callback

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/entity"
	"github.com/krainode/rpcbot/playground"
	"github.com/krainode/rpcbot/template"
	"github.com/krainode/rpcbot/util"
	"github.com/krainode/rpcbot/viewer"
)

func showView(ctx context.Context, b *bot.Bot, update *models.Update, view playground.View, err error) {
	switch {
	case errors.Is(err, playground.ErrNoResponse):
		alert(ctx, b, update, "No response yet. Send a request first.")
		return
	case errors.Is(err, playground.ErrNoSuchNode):
		alert(ctx, b, update, "That node is gone, the tree was redrawn.")
	case err != nil:
		alert(ctx, b, update, err.Error())
		return
	}

	userID := util.EffectId(update)
	text, rerr := template.RanderView(view)
	if rerr != nil {
		util.QuickMessage(ctx, b, userID, rerr.Error())
		return
	}
	util.EditOrSend(ctx, b, userID, util.CallbackMessageID(update.CallbackQuery), text, util.ResponseKeyBoard(view))
}

func ResponseHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	view, err := p.ResponseView()
	showView(ctx, b, update, view, err)
}

func ToggleNodeHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	view, err := p.ToggleNode(entity.CallbackIndex(callbackData(update)))
	showView(ctx, b, update, view, err)
}

func viewMode(opts viewer.Options) func(ctx context.Context, b *bot.Bot, update *models.Update) {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		p, _, _ := userPlayground(ctx, update)
		view, err := p.SetViewOptions(opts)
		showView(ctx, b, update, view, err)
	}
}

var (
	ExpandAllHandler   = viewMode(viewer.AllExpanded())
	CollapseAllHandler = viewMode(viewer.AllCollapsed())
	ResetViewHandler   = viewMode(viewer.DefaultOptions())
)
