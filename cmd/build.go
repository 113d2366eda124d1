package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/bgwscripts/internal/progress"
	"github.com/ziadkadry99/bgwscripts/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the script page",
	Long: `Loads every file in the characters and scripts directories, resolves
homebrew references, and writes the page. Nothing is written if any file fails
to parse or any homebrew reference has no matching character.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	generator := site.NewSiteGenerator(cfg)
	if verbose {
		generator.Logf = func(format string, args ...any) {
			fmt.Printf(format+"\n", args...)
		}
		generator.Reporter = progress.NewReporter()
	}

	count, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating page: %w", err)
	}

	fmt.Printf("Script page generated: %s (%d scripts)\n", generator.OutputPath, count)
	return nil
}
