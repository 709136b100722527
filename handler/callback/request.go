package callback

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/entity"
	"github.com/krainode/rpcbot/methods"
	"github.com/krainode/rpcbot/playground"
	"github.com/krainode/rpcbot/session"
	"github.com/krainode/rpcbot/template"
	"github.com/krainode/rpcbot/util"
	"github.com/samber/lo"
)

func presetNames() []string {
	return lo.Map(methods.Presets(), func(p methods.Preset, _ int) string { return p.Name })
}

// ShowRequest draws the request text with its actions.
func ShowRequest(ctx context.Context, b *bot.Bot, update *models.Update, snap playground.Snapshot) {
	userID := util.EffectId(update)
	text, err := template.RanderRequest(snap)
	if err != nil {
		util.QuickMessage(ctx, b, userID, err.Error())
		return
	}
	util.EditOrSend(ctx, b, userID, util.CallbackMessageID(update.CallbackQuery), text, util.RequestKeyBoard())
}

func ShowRequestHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	ShowRequest(ctx, b, update, p.Snapshot())
}

func MethodsHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	snap := p.Snapshot()
	showList(ctx, b, update, "<b>🧩 Select a method</b> ("+string(snap.Family)+")", entity.PICK_METHOD, snap.Methods, snap.Method)
}

func PresetsHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	showList(ctx, b, update, "<b>⭐ Presets</b>", entity.PICK_PRESET, presetNames(), "")
}

func PickMethodHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	name, ok := pick(ctx, b, update, p.Snapshot().Methods)
	if !ok {
		return
	}
	snap, _ := p.SelectMethod(name)
	ShowRequest(ctx, b, update, snap)
}

func PickPresetHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p, _, _ := userPlayground(ctx, update)
	name, ok := pick(ctx, b, update, presetNames())
	if !ok {
		return
	}
	snap, _ := p.ApplyPreset(name)
	ShowRequest(ctx, b, update, snap)
}

func EditRequestHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	userID := util.EffectId(update)
	msgID, err := util.AskForInput(ctx, b, userID,
		"Reply with the full JSON-RPC request body. Batches (arrays) are allowed.",
		`{"jsonrpc":"2.0","method":"eth_chainId","params":[],"id":1}`)
	if err != nil {
		return
	}
	session.GetSessionManager().SetPending(userID, session.AwaitRequestText, msgID)
}
