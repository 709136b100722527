package bot

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	cfg "github.com/krainode/rpcbot/config"
	"github.com/krainode/rpcbot/handler"
	"github.com/krainode/rpcbot/logger"
	"github.com/krainode/rpcbot/queue"
	"github.com/krainode/rpcbot/router"
	"github.com/krainode/rpcbot/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

var ErrNoApiKey = errors.New("bot_api_key is not set")

const (
	getMeInterval = 500 * time.Millisecond
	getMeTries    = 50
)

// InitBot creates the bot and resolves its identity, retrying getMe while
// Telegram is unreachable.
func InitBot(ctx context.Context, config *cfg.Config) (*bot.Bot, error) {
	if config.Env.BotApiKey == "" {
		return nil, ErrNoApiKey
	}
	log.Info().Msg("init bot...")

	b, err := bot.New(config.Env.BotApiKey, initBotOptions(config)...)
	if err != nil {
		return nil, err
	}

	operation := func() (*models.User, error) {
		m, err := b.GetMe(ctx)
		if err != nil {
			return nil, errors.New("get me failed")
		}
		logger.StdLogger().Info().Msg("getMe ok")
		return m, nil
	}
	attemptCount := 0
	notifyFunc := func(err error, backoffDelay time.Duration) {
		attemptCount++
		logger.StdLogger().Error().Msgf("attempt %d failed: %v. next retry in %v", attemptCount, err, backoffDelay)
	}
	me, err := backoff.Retry(
		ctx,
		operation,
		backoff.WithMaxTries(getMeTries),
		backoff.WithBackOff(backoff.NewConstantBackOff(getMeInterval)),
		backoff.WithNotify(notifyFunc),
	)
	if err != nil {
		return nil, err
	}

	// setting bot id
	botId := cast.ToString(me.ID)
	if err := store.NewEnv(store.BOT_ID, botId); err != nil {
		return nil, err
	}
	logger.StdLogger().Info().Str("bot_id", botId).Msg("bot id set")

	// setting bot userName
	if err := store.NewEnv(store.BOT_USERNAME, me.Username); err != nil {
		return nil, err
	}
	logger.StdLogger().Info().Str("bot_username", me.Username).Msg("bot username set")

	return b, nil
}

// StartBot runs b until ctx ends, by webhook or long polling.
func StartBot(ctx context.Context, b *bot.Bot, config *cfg.Config) {
	os.Setenv("BOT_INIT_TIMESTAMPS", cast.ToString(time.Now().Unix()))
	handler.SetBotCommand(ctx, b)
	go queue.InitPushMessage(ctx, b)

	b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{
		DropPendingUpdates: true,
	})
	if config.Env.WebHookOpen {
		go router.SetWebhook(ctx, b, config)
		log.Info().Msg("starting with webhook")
	} else {
		go b.Start(ctx)
		log.Info().Msg("starting with long poll")
	}
	<-ctx.Done()
	log.Info().Msgf("bot %v stopped", store.GetEnv(store.BOT_USERNAME))
}

func initBotOptions(config *cfg.Config) []bot.Option {
	var allOptions []bot.Option

	chOpt := bot.WithUpdatesChannelCap(1024)
	workerOpt := bot.WithWorkers(config.Env.Workers)

	mainBotOptions := handler.GetCallbackHandler(config.IsDebug())
	textHandlerOpt := bot.WithDefaultHandler(handler.TextHandler)
	mainBotOptions = append(mainBotOptions, textHandlerOpt)

	allOptions = append(allOptions, chOpt, workerOpt, bot.WithSkipGetMe())
	if config.Env.TgHookToken != "" {
		allOptions = append(allOptions, bot.WithWebhookSecretToken(config.Env.TgHookToken))
	}
	allOptions = append(allOptions, mainBotOptions...)

	return allOptions
}
