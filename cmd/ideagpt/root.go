package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/metalagman/ideagpt/internal/completion"
	"github.com/metalagman/ideagpt/internal/config"
	"github.com/metalagman/ideagpt/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	envFile string
	logFile string
	debug   bool
)

// Execute runs the root command.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd, err := newRootCmd()
	if err != nil {
		return err
	}
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:          "ideagpt",
		Short:        "ideagpt sends a prompt to a completion API and shows the raw answer",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(debug)
			return loadDotEnv(envFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", config.DefaultPath, "properties file holding OPENAI_API_KEY")
	flags.StringVar(&envFile, "env", ".env", "path to .env file (ignored if missing)")
	flags.StringVar(&logFile, "log-file", "", "log file used while the UI is running (default: discard, "+logging.DefaultFile+" with --debug)")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.String("model", completion.DefaultModel, "model identifier")
	flags.Int("max-tokens", completion.DefaultMaxTokens, "maximum number of tokens to generate")
	flags.String("endpoint", completion.DefaultEndpoint, "completion endpoint url")
	flags.Duration("timeout", 0, "request timeout, 0 keeps the transport default")

	bindings := map[string]string{
		config.KeyModel:     "model",
		config.KeyMaxTokens: "max-tokens",
		config.KeyEndpoint:  "endpoint",
		config.KeyTimeout:   "timeout",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind %s flag: %w", flag, err)
		}
	}

	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(configCmd())
	return rootCmd, nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
