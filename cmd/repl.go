package cmd

import (
	"github.com/spf13/cobra"
	"github.com/voithos/awl/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive repl",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReplCommand(mustLoadConfig())
	},
}

func runReplCommand(cfg *Config) {
	env, err := cfg.NewEnv()
	if err != nil {
		logger.Fatal(err)
	}
	err = repl.RunRepl(env,
		repl.WithPrompt(cfg.Prompt),
		repl.WithHistoryFile(cfg.HistoryFile),
	)
	if err != nil {
		logger.Fatal(err)
	}
}

func init() {
	rootCmd.AddCommand(replCmd)
}
