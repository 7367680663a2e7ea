package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/grishanin/antlog/internal/bot"
	"github.com/grishanin/antlog/internal/bot/discord"
	"github.com/grishanin/antlog/internal/bot/slack"
	"github.com/grishanin/antlog/internal/config"
	"github.com/grishanin/antlog/internal/dashboard"
	"github.com/grishanin/antlog/internal/ocr"
	"github.com/grishanin/antlog/internal/pipeline"
	"github.com/grishanin/antlog/internal/stats"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the ingestion bot",
		Long:  "Connects to the configured chat platform and processes log screenshots until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to antlog config file")
	return cmd
}

// newAdapter builds the platform adapter selected by the config.
func newAdapter(cfg *config.Config) (bot.Adapter, string, error) {
	switch cfg.Platform {
	case "discord":
		a, err := discord.New(discord.AdapterOpts{
			BotToken:  cfg.Discord.BotToken,
			ChannelID: cfg.Discord.ChannelID,
		})
		return a, cfg.Discord.ChannelID, err
	case "slack":
		a, err := slack.New(slack.AdapterOpts{
			AppToken:  cfg.Slack.AppToken,
			BotToken:  cfg.Slack.BotToken,
			ChannelID: cfg.Slack.ChannelID,
		})
		return a, cfg.Slack.ChannelID, err
	default:
		return nil, "", fmt.Errorf("unknown platform %q", cfg.Platform)
	}
}

func runBot(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, gormDB, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	adapter, channelID, err := newAdapter(cfg)
	if err != nil {
		return err
	}

	history := stats.NewHistory(cfg.History)
	pipe := pipeline.New(st, bot.Notifier{Adapter: adapter}, history)
	extractor := ocr.New(cfg.OCR.URL, cfg.OCR.APIKey, cfg.OCR.FolderID)

	daemon, err := bot.NewDaemon(bot.DaemonOpts{
		Adapter:   adapter,
		Extractor: extractor,
		Processor: pipe,
		History:   history,
		ChannelID: channelID,
		ImageDir:  cfg.ImageDir,
		Digest:    cfg.Digest,
		Out:       out,
	})
	if err != nil {
		return err
	}

	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx, stop := signal.NotifyContext(base, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Dashboard.Enabled {
		go func() {
			if err := dashboard.Start(ctx, dashboard.StartOpts{
				DB:   gormDB,
				Port: cfg.Dashboard.Port,
				Out:  out,
			}); err != nil {
				log.Printf("dashboard: %v", err)
			}
		}()
	}

	return daemon.Run(ctx)
}
