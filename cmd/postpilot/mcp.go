package main

import (
	"github.com/spf13/cobra"

	"github.com/spetersoncode/postpilot/mcpserver"
	"github.com/spetersoncode/postpilot/store"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve content generation tools over MCP on stdio",
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

			return mcpserver.New(gen, store.New(), version, logger).ServeStdio()
		},
	}
}
