package callback

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/entity"
	"github.com/krainode/rpcbot/model"
	"github.com/krainode/rpcbot/playground"
	"github.com/krainode/rpcbot/session"
	"github.com/krainode/rpcbot/util"
	"github.com/samber/lo"
)

func providerNames(snap playground.Snapshot) []string {
	return lo.Map(snap.Providers, func(p model.Provider, _ int) string { return p.Name })
}

func showList(ctx context.Context, b *bot.Bot, update *models.Update, title, prefix string, items []string, selected string) {
	userID := util.EffectId(update)
	if len(items) == 0 {
		alert(ctx, b, update, "Nothing to choose from.")
		return
	}
	util.EditOrSend(ctx, b, userID, util.CallbackMessageID(update.CallbackQuery), title, util.ListKeyBoard(prefix, items, selected))
}

func ChainsHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	snap := p.Snapshot()
	showList(ctx, b, update, "<b>⛓ Select a chain</b>", entity.PICK_CHAIN, snap.Chains, snap.Selection.ChainName)
}

func NetworksHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	snap := p.Snapshot()
	showList(ctx, b, update, "<b>🌐 Select a network</b>", entity.PICK_NETWORK, snap.Networks, snap.Selection.NetworkName)
}

func ProvidersHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	snap := p.Snapshot()
	showList(ctx, b, update, "<b>🔌 Select a provider</b>", entity.PICK_PROV, providerNames(snap), snap.Selection.ProviderName)
}

// pick resolves an indexed callback against items; stale indices fall
// back to the playground card.
func pick(ctx context.Context, b *bot.Bot, update *models.Update, items []string) (string, bool) {
	idx := entity.CallbackIndex(callbackData(update))
	if idx < 0 || idx >= len(items) {
		alert(ctx, b, update, "That list has changed, please pick again.")
		return "", false
	}
	return items[idx], true
}

func PickChainHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	name, ok := pick(ctx, b, update, p.Snapshot().Chains)
	if !ok {
		return
	}
	ShowPlayground(ctx, b, update, p.SelectChain(ctx, name))
}

func PickNetworkHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	name, ok := pick(ctx, b, update, p.Snapshot().Networks)
	if !ok {
		return
	}
	ShowPlayground(ctx, b, update, p.SelectNetwork(ctx, name))
}

func PickProviderHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	name, ok := pick(ctx, b, update, providerNames(p.Snapshot()))
	if !ok {
		return
	}
	ShowPlayground(ctx, b, update, p.SelectProvider(ctx, name))
}

func CustomURLHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	userID := util.EffectId(update)
	msgID, err := util.AskForInput(ctx, b, userID,
		"Reply with the RPC URL to use instead of the provider. Send <code>-</code> to clear it.",
		"https://")
	if err != nil {
		return
	}
	session.GetSessionManager().SetPending(userID, session.AwaitCustomURL, msgID)
}

func CustomHeadersHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, userID, _ := userPlayground(ctx, update)
	if p.Snapshot().Selection.CustomURL == "" {
		alert(ctx, b, update, "Headers are only sent to a custom URL. Set one first.")
		return
	}
	msgID, err := util.AskForInput(ctx, b, userID,
		`Reply with the headers as a JSON object, e.g. <code>{"x-api-key": "..."}</code>. Send <code>-</code> to clear them.`,
		`{"x-api-key": "..."}`)
	if err != nil {
		return
	}
	session.GetSessionManager().SetPending(userID, session.AwaitCustomHeaders, msgID)
}

func ClearCustomHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	ShowPlayground(ctx, b, update, p.ApplyCustomURL(ctx, ""))
}

func ClearLocalHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	snap := p.ClearLocalData(ctx)
	alert(ctx, b, update, "Local data cleared.")
	ShowPlayground(ctx, b, update, snap)
}
