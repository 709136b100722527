package commands

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/session"
	"github.com/krainode/rpcbot/store"
	"github.com/krainode/rpcbot/template"
	"github.com/krainode/rpcbot/util"
	"github.com/rs/zerolog/log"
)

func StartHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := util.EffectId(update)

	text, err := template.RanderStart(store.GetEnv(store.BOT_USERNAME))
	if err != nil {
		log.Error().Err(err).Send()
		return
	}
	util.QuickMessage(ctx, b, chatID, text)

	MenuHandler(ctx, b, update)
}

// MenuHandler always posts a fresh playground card.
func MenuHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := util.EffectId(update)
	p := session.GetSessionManager().Playground(ctx, chatID)
	snap := p.Snapshot()

	text, err := template.RanderPlayground(snap)
	if err != nil {
		util.QuickMessage(ctx, b, chatID, err.Error())
		return
	}
	_, _ = util.SendMessage(ctx, b, chatID, text, util.PlaygroundKeyBoard(snap))
}

func HelpHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	text, err := template.RanderHelp()
	if err != nil {
		log.Error().Err(err).Send()
		return
	}
	_, _ = util.SendMessage(ctx, b, util.EffectId(update), text, util.BackKeyBoard())
}
