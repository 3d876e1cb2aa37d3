package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/metalagman/ideagpt/internal/app"
	"github.com/metalagman/ideagpt/internal/shell"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Send one prompt and print the raw answer",
		Long:  "Send one prompt and print the raw answer. Without arguments the prompt is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := app.New(cfg)
			if err != nil {
				return err
			}

			prompt, err := readPrompt(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			out, sent := shell.Submit(cmd.Context(), client, prompt)
			if !sent {
				log.Warn().Msg("empty prompt, nothing sent")
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

// readPrompt joins args, or reads stdin when there are none. Only the final
// line break of stdin input is dropped.
func readPrompt(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read prompt from stdin: %w", err)
	}
	prompt := strings.TrimSuffix(string(data), "\n")
	prompt = strings.TrimSuffix(prompt, "\r")
	return prompt, nil
}
