package di

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/samber/do/v2"
	"github.com/samber/oops"

	activityRepo "github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/repository"
	activityService "github.com/reshetovitsme/channel-protector-bot/internal/modules/activity/service"
	analysisService "github.com/reshetovitsme/channel-protector-bot/internal/modules/analysis/service"
	feedService "github.com/reshetovitsme/channel-protector-bot/internal/modules/feed/service"
	moderationRepo "github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/repository"
	moderationService "github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/service"
	"github.com/reshetovitsme/channel-protector-bot/internal/platform/telegram"
	"github.com/reshetovitsme/channel-protector-bot/internal/shared/config"
	"github.com/reshetovitsme/channel-protector-bot/internal/shared/sampling"
	httpServer "github.com/reshetovitsme/channel-protector-bot/internal/transport/http"
	telegramHandler "github.com/reshetovitsme/channel-protector-bot/internal/transport/telegram"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Platform Client. The concrete BotClient receives the bot
	// instance later, once the bot itself has been constructed.
	do.Provide(injector, func(i do.Injector) (*telegram.BotClient, error) {
		return telegram.NewBotClient(), nil
	})
	do.Provide(injector, func(i do.Injector) (telegram.Client, error) {
		return do.MustInvoke[*telegram.BotClient](i), nil
	})

	// Register Sampler
	do.Provide(injector, func(i do.Injector) (sampling.Sampler, error) {
		return sampling.NewFromTime(), nil
	})

	// Register Activity Repository
	do.Provide(injector, func(i do.Injector) (activityRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := activityRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize activity repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Moderation Repository
	do.Provide(injector, func(i do.Injector) (moderationRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := moderationRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize moderation repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Activity Service
	do.Provide(injector, func(i do.Injector) (*activityService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[activityRepo.Repository](i)
		return activityService.New(repo, cfg.ActivityRetentionDays), nil
	})

	// Register Analyzer
	do.Provide(injector, func(i do.Injector) (*analysisService.Analyzer, error) {
		client := do.MustInvoke[telegram.Client](i)
		return analysisService.NewAnalyzer(client, analysisService.NewDiscoverer(client)), nil
	})

	// Register Moderation Service
	do.Provide(injector, func(i do.Injector) (*moderationService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := do.MustInvoke[telegram.Client](i)
		repo := do.MustInvoke[moderationRepo.Repository](i)
		analyzer := do.MustInvoke[*analysisService.Analyzer](i)
		activity := do.MustInvoke[*activityService.Service](i)
		return moderationService.New(client, repo, analyzer, activity, cfg), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		repo := do.MustInvoke[moderationRepo.Repository](i)
		return feedService.New(repo), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		moderation := do.MustInvoke[*moderationService.Service](i)
		activity := do.MustInvoke[*activityService.Service](i)
		sampler := do.MustInvoke[sampling.Sampler](i)
		return telegramHandler.New(cfg, moderation, activity, sampler), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		feed := do.MustInvoke[*feedService.Service](i)
		return httpServer.New(cfg, feed), nil
	})

	// Register Bot (needs to be initialized after handlers are ready)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegramHandler.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(handler.HandleUpdate),
			bot.WithAllowedUpdates(bot.AllowedUpdates{
				"message",
				"message_reaction",
			}),
		}
		if cfg.TelegramAPIURL != "" {
			opts = append(opts, bot.WithServerURL(cfg.TelegramAPIURL))
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		// Register bot commands
		handler.RegisterCommands(b)

		// Wire the bot into the platform client
		client := do.MustInvoke[*telegram.BotClient](i)
		client.SetBot(b)

		return b, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx := context.Background()

	if b, err := do.Invoke[*bot.Bot](injector); err == nil && b != nil {
		b.Close(ctx)
	}

	return nil
}
