package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/krainode/rpcbot/bot"
	"github.com/krainode/rpcbot/config"
	"github.com/krainode/rpcbot/playground"
	"github.com/krainode/rpcbot/registry"
	"github.com/krainode/rpcbot/rpc"
	"github.com/krainode/rpcbot/session"
	"github.com/krainode/rpcbot/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var _ = func() any {
	zerolog.TimeFieldFormat = "2006-01-02 15:04:05"
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	return nil
}()

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := config.Init(); err != nil {
		log.Fatal().Err(err).Str("path", config.Path()).Msg("load config failed")
	}
	cfg := config.YmlConfig
	if cfg.IsDebug() {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		log.Debug().Msg("debug logging is on")
	}

	prefs, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open preference store failed")
	}
	defer closeStore()

	// the registry is loaded once, before any session exists
	loaded := registry.NewLoader(cfg.Env.RegistryURL).Load(ctx)

	dispatcher := rpc.NewDispatcher(cfg.SendTimeout(), cfg.ProbeTimeout())
	dispatcher.Verbose = cfg.IsDebug()

	session.Init(playground.Deps{
		Registry:      loaded.Registry,
		RegistryError: loaded.Error,
		Dispatcher:    dispatcher,
		Store:         prefs,
	})

	b, err := bot.InitBot(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init bot failed")
	}
	go bot.StartBot(ctx, b, cfg)
	log.Info().Msg("bot started, press Ctrl + c to stop")

	// wait
	<-ctx.Done()
	log.Info().Msg("bye")
}

func openStore(ctx context.Context, cfg *config.Config) (store.PreferenceStore, func(), error) {
	if cfg.Store.Backend == config.StoreMemory {
		log.Warn().Msg("using in-memory preference store, preferences are lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}

	rs, err := store.DialRedis(ctx, store.RedisOptions{
		Ip:       cfg.Redis.Ip,
		Port:     cfg.Redis.Port,
		Username: cfg.Redis.Username,
		Passwd:   cfg.Redis.Passwd,
		Db:       cfg.Redis.Db,
	})
	if err != nil {
		return nil, nil, err
	}
	return rs, func() { _ = rs.Close() }, nil
}
