package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:          "flaskgen",
	Short:        "flaskgen stamps out a minimal Flask application skeleton",
	Long:         `flaskgen stamps out a minimal Flask application skeleton`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(cmd.ErrOrStderr())
		log.SetLevel(logrus.InfoLevel)

		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every directory and file as it is written")
}
