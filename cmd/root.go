package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	logger  = log.New(os.Stderr, "awl: ", 0)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "awl [FILE...]",
	Short: "The awl language",
	Long: `Awl is a small lisp with Q-expressions.

Without arguments awl starts an interactive repl.  Otherwise each argument is
treated as a source file and run in order.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		if len(args) == 0 {
			runReplCommand(cfg)
			return
		}
		runFileCommand(cfg, args, false, false)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.awl.yaml)")
}

func mustLoadConfig() *Config {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		logger.Fatal(err)
	}
	return cfg
}
