package handler

import (
	"context"
	"os"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/krainode/rpcbot/entity"
	"github.com/krainode/rpcbot/handler/callback"
	"github.com/krainode/rpcbot/handler/commands"
	"github.com/krainode/rpcbot/util"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

func DebugMiddlewares(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, bot *bot.Bot, update *models.Update) {
		log.Debug().
			Interface("new update", update).
			Send()
		next(ctx, bot, update)
	}
}

func GetCallbackHandler(debug bool) []bot.Option {
	botOptions := []bot.Option{
		// callbackQueryMiddlewares
		bot.WithMiddlewares(WrapHandlerCallback),

		bot.WithCallbackQueryDataHandler(entity.PLAYGROUND, bot.MatchTypeExact, callback.PlaygroundHandler),
		bot.WithCallbackQueryDataHandler(entity.HELP, bot.MatchTypeExact, commands.HelpHandler),

		// selection
		bot.WithCallbackQueryDataHandler(entity.CHAINS, bot.MatchTypeExact, callback.ChainsHandler),
		bot.WithCallbackQueryDataHandler(entity.NETWORKS, bot.MatchTypeExact, callback.NetworksHandler),
		bot.WithCallbackQueryDataHandler(entity.PROVIDERS, bot.MatchTypeExact, callback.ProvidersHandler),
		bot.WithCallbackQueryDataHandler(entity.PICK_CHAIN, bot.MatchTypePrefix, callback.PickChainHandler),
		bot.WithCallbackQueryDataHandler(entity.PICK_NETWORK, bot.MatchTypePrefix, callback.PickNetworkHandler),
		bot.WithCallbackQueryDataHandler(entity.PICK_PROV, bot.MatchTypePrefix, callback.PickProviderHandler),
		bot.WithCallbackQueryDataHandler(entity.CUSTOM_URL, bot.MatchTypeExact, callback.CustomURLHandler),
		bot.WithCallbackQueryDataHandler(entity.CUSTOM_HEADERS, bot.MatchTypeExact, callback.CustomHeadersHandler),
		bot.WithCallbackQueryDataHandler(entity.CLEAR_CUSTOM, bot.MatchTypeExact, callback.ClearCustomHandler),
		bot.WithCallbackQueryDataHandler(entity.CLEAR_LOCAL, bot.MatchTypeExact, callback.ClearLocalHandler),

		// request
		bot.WithCallbackQueryDataHandler(entity.METHODS, bot.MatchTypeExact, callback.MethodsHandler),
		bot.WithCallbackQueryDataHandler(entity.PRESETS, bot.MatchTypeExact, callback.PresetsHandler),
		bot.WithCallbackQueryDataHandler(entity.PICK_METHOD, bot.MatchTypePrefix, callback.PickMethodHandler),
		bot.WithCallbackQueryDataHandler(entity.PICK_PRESET, bot.MatchTypePrefix, callback.PickPresetHandler),
		bot.WithCallbackQueryDataHandler(entity.SHOW_REQUEST, bot.MatchTypeExact, callback.ShowRequestHandler),
		bot.WithCallbackQueryDataHandler(entity.EDIT_REQUEST, bot.MatchTypeExact, callback.EditRequestHandler),

		// dispatch
		bot.WithCallbackQueryDataHandler(entity.SEND, bot.MatchTypeExact, callback.SendHandler),
		bot.WithCallbackQueryDataHandler(entity.RETRY, bot.MatchTypeExact, callback.RetryHandler),
		bot.WithCallbackQueryDataHandler(entity.PROBE, bot.MatchTypeExact, callback.ProbeHandler),

		// response tree
		bot.WithCallbackQueryDataHandler(entity.RESPONSE, bot.MatchTypeExact, callback.ResponseHandler),
		bot.WithCallbackQueryDataHandler(entity.TOGGLE_NODE, bot.MatchTypePrefix, callback.ToggleNodeHandler),
		bot.WithCallbackQueryDataHandler(entity.EXPAND_ALL, bot.MatchTypeExact, callback.ExpandAllHandler),
		bot.WithCallbackQueryDataHandler(entity.COLLAPSE_ALL, bot.MatchTypeExact, callback.CollapseAllHandler),
		bot.WithCallbackQueryDataHandler(entity.RESET_VIEW, bot.MatchTypeExact, callback.ResetViewHandler),

		// recent activity
		bot.WithCallbackQueryDataHandler(entity.HISTORY, bot.MatchTypeExact, callback.HistoryHandler),
		bot.WithCallbackQueryDataHandler(entity.CLEAR_HISTORY, bot.MatchTypeExact, callback.ClearHistoryHandler),

		// snippets
		bot.WithCallbackQueryDataHandler(entity.SNIPPETS, bot.MatchTypeExact, callback.SnippetsHandler),
		bot.WithCallbackQueryDataHandler(entity.PICK_SNIPPET, bot.MatchTypePrefix, callback.PickSnippetHandler),
	}

	if debug {
		botOptions = append([]bot.Option{bot.WithMiddlewares(DebugMiddlewares)}, botOptions...)
	}
	return botOptions
}

// WrapHandlerCallback answers every callback query. Indexed buttons from
// before the last restart point at lists that may have changed, so they
// get a fresh playground card instead.
func WrapHandlerCallback(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.CallbackQuery == nil {
			next(ctx, b, update)
			return
		}

		cq := update.CallbackQuery
		ctx, answered := callback.TrackAnswer(ctx)
		defer func() {
			if !answered.Load() {
				util.CallBackAnswer(ctx, b, cq)
			}
		}()

		if cq.Message.Message != nil {
			initTime := os.Getenv("BOT_INIT_TIMESTAMPS")
			if initTime != "" {
				initTimeT := time.Unix(cast.ToInt64(initTime), 0)

				targetTime := time.Unix(int64(cq.Message.Message.Date), 0)
				if targetTime.Before(initTimeT) && entity.IsIndexed(cq.Data) {
					log.Debug().Msg("old message ignored")
					callback.PlaygroundHandler(ctx, b, update)
					return
				}
			}
		}

		next(ctx, b, update)
	}
}
