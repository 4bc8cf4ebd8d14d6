package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/androidfix/internal/engine"
)

var (
	applyForce  bool
	applyDryRun bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Write namespaces and compile settings into subproject build files",
	Long: `Patch every Android subproject build file that lacks a namespace or
does not match the configured compileSdk, Java compatibility or Kotlin
jvmTarget.

Subprojects that cannot be patched (no build file, no android block) stop
the apply unless --force is given, in which case they are skipped.`,
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

		result, err := eng.Apply(context.Background(), &engine.ApplyRequest{
			ScanRequest: engine.ScanRequest{CWD: cwd, ConfigPath: configPath},
			Force:       applyForce,
			DryRun:      applyDryRun,
		})

		out := cmd.OutOrStdout()
		if jsonOutput && result != nil {
			if jerr := outputJSON(out, result); jerr != nil {
				return jerr
			}
			return err
		}

		if err != nil {
			if result != nil && result.Plan != nil && result.Plan.HasConflicts() {
				PrintSection(out, "Conflicts Detected")
				for _, c := range result.Plan.Conflicts {
					PrintError(out, fmt.Sprintf("%s: %s (%s)", c.Subproject, c.Reason, c.Path))
				}
				_, _ = fmt.Fprintln(out)
				PrintWarning(out, "Use --force to skip conflicting subprojects.")
			}
			return err
		}

		if applyDryRun {
			printPlan(out, result.Plan)
			return nil
		}

		for _, op := range result.Applied {
			PrintSuccess(out, describeOperation(op))
		}
		for _, name := range result.Skipped {
			PrintWarning(out, fmt.Sprintf("Skipped %s", name))
		}
		PrintSuccess(out, fmt.Sprintf("Patched %s", PrintCount(len(result.Applied), "build file", "build files")))
		return nil
	},
}

func init() {
	applyCmd.Flags().BoolVarP(&applyForce, "force", "f", false, "Skip conflicting subprojects instead of refusing")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Show what would be patched without writing")
}
