package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/voithos/awl/lisp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the awl version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "awl %s\n", lisp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
