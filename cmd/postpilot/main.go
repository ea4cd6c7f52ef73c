// Command postpilot generates LinkedIn posts with an LLM pipeline,
// routes them through Telegram approval, and publishes approved posts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	ai "github.com/spetersoncode/postpilot"
	"github.com/spetersoncode/postpilot/client"
	"github.com/spetersoncode/postpilot/pipeline"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "postpilot",
		Short:   "LinkedIn content generation with human-in-the-loop approval",
		Version: version,
		Long: `postpilot runs a five-stage LLM pipeline (research, draft, image prompt,
review, finalize) to generate LinkedIn posts, sends them to a reviewer on
Telegram, and publishes approved posts through the LinkedIn API.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newGenerateCmd(), newMCPCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func buildClient(ctx context.Context, cfg *Config) (*client.Client, error) {
	c, err := client.New(ctx, client.Config{
		Provider: ai.Provider(cfg.Provider),
		APIKey:   cfg.APIKey(),
		Model:    cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", cfg.Provider, err)
	}
	return c, nil
}

func buildGenerator(c *client.Client, cfg *Config, logger *slog.Logger) *pipeline.Generator {
	return pipeline.NewGenerator(c,
		pipeline.WithLogger(logger),
		pipeline.WithTemperature(cfg.Temperature),
		pipeline.WithStageTimeout(cfg.StageTimeout),
	)
}
