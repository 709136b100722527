package callback

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/playground"
	"github.com/krainode/rpcbot/template"
	"github.com/krainode/rpcbot/util"
)

func send(ctx context.Context, b *bot.Bot, update *models.Update, retried bool) {
	p, userID, _ := userPlayground(ctx, update)
	alert(ctx, b, update, "Sending…")

	out := p.Send(ctx)
	botLog().Int64("userID", userID).Str("method", out.Method).Bool("ok", out.OK).Str("endpoint", out.EndpointURL).Msg("request sent")

	var view *playground.View
	if out.OK {
		if v, err := playground.ViewOf(out.Response); err == nil {
			view = &v
		}
	}
	text, err := template.RanderOutcome(out, view, retried)
	if err != nil {
		util.QuickMessage(ctx, b, userID, err.Error())
		return
	}
	if view != nil {
		_, _ = util.SendMessage(ctx, b, userID, text, util.ResponseKeyBoard(*view))
		return
	}
	_, _ = util.SendMessage(ctx, b, userID, text, util.FailureKeyBoard(out.Timeout))
}

func SendHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	send(ctx, b, update, false)
}

// RetryHandler resends after a timeout; a second timeout is reported as
// unreachable.
func RetryHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	send(ctx, b, update, true)
}

func ProbeHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, userID, _ := userPlayground(ctx, update)
	alert(ctx, b, update, "Probing…")

	res, ok := p.Probe(ctx)
	if !ok {
		util.QuickMessage(ctx, b, userID, playground.ErrNoEndpoint.Error())
		return
	}
	snap := p.Snapshot()
	text, err := template.RanderProbe(snap.EffectiveURL, res)
	if err != nil {
		util.QuickMessage(ctx, b, userID, err.Error())
		return
	}
	util.QuickMessage(ctx, b, userID, text)
	ShowPlayground(ctx, b, update, snap)
}
