package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lmimport",
		Short: "lmimport - import ChatGPT conversation exports into LM Studio",
		Long: `lmimport converts a bulk ChatGPT conversations.json export into
individual LM Studio conversation files.

Each conversation's message tree is linearized along its active branch,
export artifacts are stripped from message text, and a $tag$ prefix in a
conversation title routes its file into a matching subfolder.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newConvertCommand())
	cmd.AddCommand(newInspectCommand())
	cmd.AddCommand(newCheckCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
