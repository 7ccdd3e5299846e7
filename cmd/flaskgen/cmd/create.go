package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dogeorg/flaskgen/pkg/flask"
	"github.com/dogeorg/flaskgen/pkg/generator"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create [target]",
	Short: "Write the Flask skeleton into target (default: current directory)",
	Long: `Write the Flask skeleton into target, creating it if needed.

Existing directories are reused and existing files with the same names are
overwritten without a backup. Files not part of the skeleton are left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := createConfig(cmd, args)
		if err != nil {
			return err
		}

		res, err := generator.Run(cfg, flask.Skeleton(), log)
		if err != nil {
			return err
		}

		if cfg.DryRun {
			out := cmd.OutOrStdout()
			for _, p := range res.Planned {
				fmt.Fprintln(out, p)
			}
			fmt.Fprintf(out, "%d directories, %d files would be written to %s\n", res.Dirs, res.Files, res.Target)
		}
		return nil
	},
}

func createConfig(cmd *cobra.Command, args []string) (generator.Config, error) {
	flags := cmd.Flags()

	cfg := generator.Config{Target: "."}
	if len(args) == 1 {
		cfg.Target = args[0]
	}

	cfg.DryRun, _ = flags.GetBool("dry-run")
	cfg.Git, _ = flags.GetBool("git")
	cfg.Commit, _ = flags.GetBool("commit")
	cfg.CommitMessage, _ = flags.GetString("message")
	cfg.AuthorName, _ = flags.GetString("author-name")
	cfg.AuthorEmail, _ = flags.GetString("author-email")

	mode, _ := flags.GetString("file-mode")
	fileMode, err := parseMode(mode)
	if err != nil {
		return cfg, fmt.Errorf("invalid --file-mode: %w", err)
	}
	cfg.FileMode = fileMode

	return cfg, cfg.Validate()
}

// parseMode reads an octal permission such as 0644 or 644.
func parseMode(s string) (os.FileMode, error) {
	u, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if u&^0o777 != 0 {
		return 0, fmt.Errorf("%s is not a permission mode", s)
	}
	return os.FileMode(u), nil
}

func init() {
	createCmd.Flags().BoolP("dry-run", "n", false, "Print what would be written without touching the disk")
	createCmd.Flags().Bool("git", false, "Initialise a git repository in target")
	createCmd.Flags().Bool("commit", false, "Commit the skeleton (requires --git)")
	createCmd.Flags().StringP("message", "m", generator.DefaultCommitMessage, "Commit message")
	createCmd.Flags().String("author-name", "", "Commit author name")
	createCmd.Flags().String("author-email", "", "Commit author email")
	createCmd.Flags().String("file-mode", "0644", "Permission bits for written files (octal)")
	rootCmd.AddCommand(createCmd)
}
