package callback

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/template"
	"github.com/krainode/rpcbot/util"
)

func HistoryHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, userID, msgID := userPlayground(ctx, update)
	recent := p.Recent()
	text, err := template.RanderHistory(recent)
	if err != nil {
		util.QuickMessage(ctx, b, userID, err.Error())
		return
	}
	util.EditOrSend(ctx, b, userID, msgID, text, util.HistoryKeyBoard(len(recent) > 0))
}

func ClearHistoryHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	p.ClearRecent(ctx)
	HistoryHandler(ctx, b, update)
}
