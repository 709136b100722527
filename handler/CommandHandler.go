package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/handler/callback"
	"github.com/krainode/rpcbot/handler/commands"
	"github.com/krainode/rpcbot/store"
	"github.com/krainode/rpcbot/util"
	"github.com/rs/zerolog/log"
)

type (
	commandHandler = bot.HandlerFunc
	command        = string
)

const (
	start    command = "/start"
	menu     command = "/menu"
	chains   command = "/chains"
	method   command = "/method"
	presets  command = "/presets"
	request  command = "/request"
	send     command = "/send"
	probe    command = "/probe"
	custom   command = "/custom"
	headers  command = "/headers"
	code     command = "/code"
	history  command = "/history"
	clearAll command = "/clear"
	help     command = "/help"
)

type cmd struct {
	Name command
	Desc string
}

var commandDescList = []cmd{
	{Name: menu, Desc: "Show the playground"},
	{Name: chains, Desc: "Pick a chain"},
	{Name: method, Desc: "Pick a method template"},
	{Name: presets, Desc: "Load a preset request"},
	{Name: request, Desc: "Show the request body"},
	{Name: send, Desc: "Send the request"},
	{Name: probe, Desc: "Check the endpoint"},
	{Name: custom, Desc: "Use a custom RPC URL"},
	{Name: headers, Desc: "Headers for the custom URL"},
	{Name: code, Desc: "Code snippets"},
	{Name: history, Desc: "Recent calls"},
	{Name: clearAll, Desc: "Clear local data"},
	{Name: help, Desc: "Help"},
}

var commandHandlerMap = map[string]commandHandler{
	start:    commands.StartHandler,
	menu:     commands.MenuHandler,
	chains:   callback.ChainsHandler,
	method:   callback.MethodsHandler,
	presets:  callback.PresetsHandler,
	request:  callback.ShowRequestHandler,
	send:     callback.SendHandler,
	probe:    callback.ProbeHandler,
	custom:   commands.CustomHandler,
	headers:  commands.HeadersHandler,
	code:     callback.SnippetsHandler,
	history:  callback.HistoryHandler,
	clearAll: callback.ClearLocalHandler,
	help:     commands.HelpHandler,
}

var _ = func() any {
	for key := range commandHandlerMap {
		text := fmt.Sprintf("%s (%s) is load", "command", key)
		log.Debug().Msg(text)
	}
	return nil
}()

func CommandHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	name, _ := util.SplitCommand(update.Message.Text, store.GetEnv(store.BOT_USERNAME))
	if handler, exists := commandHandlerMap[name]; exists {
		handler(ctx, b, update)
		return
	}
	commands.HelpHandler(ctx, b, update)
}

func SetBotCommand(ctx context.Context, b *bot.Bot) {
	cmds := make([]models.BotCommand, 0, len(commandDescList))

	for _, cmd := range commandDescList {
		cmds = append(cmds, models.BotCommand{
			Command:     cmd.Name,
			Description: cmd.Desc,
		})
	}

	ok, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: cmds,
	})
	if err != nil {
		log.Error().Err(err).Msg("bot set commands err")
	}
	if ok {
		log.Info().Msg("bot command all set!")
	}
}
