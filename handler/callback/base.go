package callback

import (
	"context"
	"sync/atomic"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/logger"
	"github.com/krainode/rpcbot/playground"
	"github.com/krainode/rpcbot/session"
	"github.com/krainode/rpcbot/template"
	"github.com/krainode/rpcbot/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func botLog() *zerolog.Event {
	return log.Debug().Func(logger.WithCategory(logger.CategoryBot))
}

// userPlayground resolves the sender's playground and the message a
// pressed button lives on; messageID is 0 for commands and text.
func userPlayground(ctx context.Context, update *models.Update) (p *playground.Playground, userID int64, messageID int) {
	userID = util.EffectId(update)
	p = session.GetSessionManager().Playground(ctx, userID)
	messageID = util.CallbackMessageID(update.CallbackQuery)
	return p, userID, messageID
}

// callbackData is empty for non-callback updates.
func callbackData(update *models.Update) string {
	if update.CallbackQuery == nil {
		return ""
	}
	return update.CallbackQuery.Data
}

type answeredKey struct{}

// TrackAnswer marks ctx so handlers can report that they answered the
// callback query themselves.
func TrackAnswer(ctx context.Context) (context.Context, *atomic.Bool) {
	answered := new(atomic.Bool)
	return context.WithValue(ctx, answeredKey{}, answered), answered
}

// alert shows text as a toast for button presses and as a message
// otherwise. A callback query can be answered once only.
func alert(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	if update.CallbackQuery != nil {
		answered, _ := ctx.Value(answeredKey{}).(*atomic.Bool)
		if answered == nil || answered.CompareAndSwap(false, true) {
			util.CallBackAlert(ctx, b, update.CallbackQuery, text)
			return
		}
	}
	util.QuickMessage(ctx, b, util.EffectId(update), text)
}

// ShowPlayground draws the selection card with its control panel.
func ShowPlayground(ctx context.Context, b *bot.Bot, update *models.Update, snap playground.Snapshot) {
	userID := util.EffectId(update)
	text, err := template.RanderPlayground(snap)
	if err != nil {
		util.QuickMessage(ctx, b, userID, err.Error())
		return
	}
	util.EditOrSend(ctx, b, userID, util.CallbackMessageID(update.CallbackQuery), text, util.PlaygroundKeyBoard(snap))
}

func PlaygroundHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	ShowPlayground(ctx, b, update, p.Snapshot())
}
