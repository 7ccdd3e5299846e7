package cmd

import (
	"fmt"
	"strings"

	"github.com/dogeorg/flaskgen/pkg/flask"
	"github.com/dogeorg/flaskgen/pkg/structure"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the layout create would write",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		skeleton := flask.Skeleton()
		out := cmd.OutOrStdout()

		err := structure.Walk(skeleton, func(path string, n structure.Node) error {
			depth := strings.Count(path, "/")
			name := path[strings.LastIndex(path, "/")+1:]
			if n.IsDir() {
				name += "/"
			}
			fmt.Fprintln(out, strings.Repeat("    ", depth)+name)
			return nil
		})
		if err != nil {
			return err
		}

		stats := structure.Stats(skeleton)
		fmt.Fprintf(out, "\n%d directories, %d files\n", stats.Dirs, stats.Files)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
