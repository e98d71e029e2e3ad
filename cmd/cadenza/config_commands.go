package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cadenza/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.WriteSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "library_db:           %s\n", cfg.Paths.LibraryDB)
			fmt.Fprintf(out, "log_dir:              %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "musicbrainz.base_url: %s\n", cfg.MusicBrainz.BaseURL)
			fmt.Fprintf(out, "musicbrainz.rate:     %.2f req/s\n", cfg.MusicBrainz.RateLimit)
			fmt.Fprintf(out, "match.strong_thresh:  %.3f\n", cfg.Match.StrongRecThresh)
			fmt.Fprintf(out, "match.medium_thresh:  %.3f\n", cfg.Match.MediumRecThresh)
			fmt.Fprintf(out, "match.gap_thresh:     %.3f\n", cfg.Match.RecGapThresh)
			fmt.Fprintf(out, "match.timid:          %v\n", cfg.Match.Timid)
			fmt.Fprintf(out, "logging:              %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
			return nil
		},
	}
}
