package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Answer a single question and exit",
	Long: `Answers one question against the configured answer source.

Examples:
  robobob ask "2 + 3 * 4"
  robobob ask What is your name`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	dispatcher, closeFn, err := newDispatcher(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	answer, err := dispatcher.Route(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}

func init() {
	rootCmd.AddCommand(askCmd)
}
