package cmd

import (
	"fmt"

	"github.com/dogeorg/flaskgen/pkg/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get flaskgen version information",
	Run: func(cmd *cobra.Command, args []string) {
		v := version.Get()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Release: %s\n", v.Release)
		fmt.Fprintf(out, "Tagged: %t\n", v.IsRelease())
		fmt.Fprintf(out, "Git: %s\n", v.Git.Commit)
		fmt.Fprintf(out, "Dirty: %t\n", v.Git.Dirty)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
