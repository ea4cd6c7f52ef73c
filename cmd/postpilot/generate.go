package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/postpilot/pipeline"
)

func newGenerateCmd() *cobra.Command {
	var (
		companyInfo string
		topic       string
		style       string
		audience    string
		length      string
		variations  int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a post (or variations) and print it as JSON",
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

			req := pipeline.Request{
				CompanyInfo:    companyInfo,
				Topic:          topic,
				Style:          pipeline.Style(style),
				TargetAudience: audience,
				ContentLength:  pipeline.Length(length),
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			if variations > 1 {
				results, err := gen.Variations(cmd.Context(), req, variations)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					return fmt.Errorf("all %d variations failed", variations)
				}
				return enc.Encode(results)
			}

			result, err := gen.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			if result.Failed() {
				return fmt.Errorf("generation failed: %s", result.Error)
			}
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&companyInfo, "company", "", "company context the content is grounded in (required)")
	cmd.Flags().StringVar(&topic, "topic", "", "content topic (required)")
	cmd.Flags().StringVar(&style, "style", "professional", "writing style: professional, casual, inspirational, technical, storytelling")
	cmd.Flags().StringVar(&audience, "audience", "", "optional target audience")
	cmd.Flags().StringVar(&length, "length", "medium", "content length: short, medium, long")
	cmd.Flags().IntVar(&variations, "variations", 1, "number of variations to generate")
	cmd.MarkFlagRequired("company")
	cmd.MarkFlagRequired("topic")

	return cmd
}
