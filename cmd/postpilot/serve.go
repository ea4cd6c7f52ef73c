package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/postpilot/images"
	"github.com/spetersoncode/postpilot/linkedin"
	"github.com/spetersoncode/postpilot/server"
	"github.com/spetersoncode/postpilot/store"
	"github.com/spetersoncode/postpilot/telegram"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the content generation and approval HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			c, err := buildClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			gen := buildGenerator(c, cfg, logger)

			opts := []server.Option{server.WithLogger(logger)}

			// Image generation rides on the chat provider; only OpenAI
			// supports it and the client reports that at call time.
			if cfg.Provider == "openai" {
				opts = append(opts, server.WithImageGenerator(
					images.New(c, images.WithLogger(logger))))
			}
			if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
				bot := telegram.New(cfg.TelegramBotToken, telegram.WithLogger(logger))
				opts = append(opts, server.WithNotifier(bot, cfg.TelegramChatID))
			} else {
				logger.Warn("telegram not configured, approval requests will not be sent")
			}
			if cfg.LinkedInAccessToken != "" {
				opts = append(opts, server.WithPublisher(
					linkedin.New(cfg.LinkedInAccessToken, linkedin.WithLogger(logger))))
			} else {
				logger.Warn("linkedin not configured, approved content will not be published")
			}

			srv := server.New(gen, store.New(), opts...)

			addr := ":" + cfg.Port
			logger.Info("starting server", "addr", addr, "provider", cfg.Provider)
			return http.ListenAndServe(addr, srv.Handler())
		},
	}
}
