package main

import (
	"fmt"

	"github.com/metalagman/ideagpt/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect ideagpt configuration",
	}
	cmd.AddCommand(configShowCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with the credential redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			red := cfg.Redacted()

			out := map[string]any{
				"config_file":            cfgFile,
				config.EnvAPIKey:         red.APIKey,
				config.KeyModel:          red.Model,
				config.KeyMaxTokens:      red.MaxTokens,
				config.KeyEndpoint:       red.Endpoint,
				config.KeyTimeout:        red.Timeout.String(),
				config.KeyRenderMarkdown: red.RenderMarkdown,
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
