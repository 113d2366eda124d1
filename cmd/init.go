package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/bgwscripts/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a bgwscripts config file with an interactive wizard",
	Long:  `Runs an interactive wizard for the input and output paths and writes them to the config file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
