package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/grishanin/antlog/internal/pipeline"
	"github.com/grishanin/antlog/internal/stats"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Run a saved OCR text file through the parsing pipeline",
		Long:  "Reads recognized text from a file and processes it exactly like a photo upload, printing the parse summary. Review messages go to stdout instead of chat.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to antlog config file")
	return cmd
}

// stdoutNotifier prints review messages instead of sending them to chat.
type stdoutNotifier struct {
	cmd *cobra.Command
}

func (n stdoutNotifier) Notify(ctx context.Context, target, text string) error {
	fmt.Fprintf(n.cmd.OutOrStdout(), "%s\n", text)
	return nil
}

func runParse(cmd *cobra.Command, configPath, path string) error {
	out := cmd.OutOrStdout()

	cfg, _, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	history := stats.NewHistory(cfg.History)
	pipe := pipeline.New(st, stdoutNotifier{cmd: cmd}, history)

	sum, err := pipe.Process(context.Background(), string(text), pipeline.Message{
		UserID:   "local",
		Username: "local",
		Date:     time.Now().Unix(),
		FileName: path,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", sum.Describe())
	return nil
}
