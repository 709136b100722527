package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/krainode/rpcbot/config"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

// use webhook to get update
func SetWebhook(ctx context.Context, b *bot.Bot, cfg *config.Config) {
	if _, err := b.SetWebhook(ctx, &bot.SetWebhookParams{
		DropPendingUpdates: true,
		URL:                cfg.Env.TgHook,
		SecretToken:        cfg.Env.TgHookToken,
	}); err != nil {
		log.Error().Err(err).Msg("set webhook err")
		return
	}

	srv := &http.Server{
		Addr:              cfg.Env.LocalHost,
		Handler:           wrapWebhookHandler(b),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("webhook server err")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	b.StartWebhook(ctx)
}

func wrapWebhookHandler(bot *bot.Bot) http.HandlerFunc {
	originalHandler := bot.WebhookHandler()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		originalHandler(w, r)
	}
}
