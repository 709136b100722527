package callback

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/entity"
	"github.com/krainode/rpcbot/snippet"
	"github.com/krainode/rpcbot/template"
	"github.com/krainode/rpcbot/util"
)

func showSnippet(ctx context.Context, b *bot.Bot, update *models.Update, kind snippet.Kind) {
	p, userID, msgID := userPlayground(ctx, update)
	code, err := p.Snippet(kind)
	if err != nil {
		alert(ctx, b, update, err.Error())
		return
	}
	text, err := template.RanderSnippet(kind, code)
	if err != nil {
		util.QuickMessage(ctx, b, userID, err.Error())
		return
	}
	util.EditOrSend(ctx, b, userID, msgID, text, util.SnippetKeyBoard(kind))
}

func SnippetsHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	showSnippet(ctx, b, update, snippet.Curl)
}

func PickSnippetHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	kind, ok := snippet.ParseKind(entity.CallbackArg(callbackData(update)))
	if !ok {
		alert(ctx, b, update, snippet.ErrUnknownKind.Error())
		return
	}
	showSnippet(ctx, b, update, kind)
}
