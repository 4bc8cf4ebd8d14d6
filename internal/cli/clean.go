package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/androidfix/internal/engine"
)

var cleanDryRun bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the shared build directory",
	Long: `Remove <project root>/build, where the app and every plugin subproject
write their Gradle build output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, done, err := newEngine()
		if err != nil {
			return err
		}
		defer done()

		cwd, err := getwd()
		if err != nil {
			return err
		}

		result, err := eng.Clean(context.Background(), &engine.CleanRequest{
			CWD:    cwd,
			DryRun: cleanDryRun,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		switch {
		case !result.Existed:
			PrintInfo(out, fmt.Sprintf("Nothing to clean: %s does not exist", result.Path))
		case cleanDryRun:
			PrintInfo(out, fmt.Sprintf("Would remove %s", result.Path))
		default:
			PrintSuccess(out, fmt.Sprintf("Removed %s", result.Path))
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Show what would be removed without removing it")
}
