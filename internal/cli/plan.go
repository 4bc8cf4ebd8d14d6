package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/androidfix/internal/engine"
	"github.com/danieljhkim/androidfix/internal/planner"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the build file edits apply would make",
	Args:  cobra.NoArgs,
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

		result, err := eng.Plan(context.Background(), &engine.PlanRequest{
			ScanRequest: engine.ScanRequest{CWD: cwd, ConfigPath: configPath},
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result.Plan)
		}

		printPlan(out, result.Plan)
		return nil
	},
}

// describeOperation renders an operation as a one-line summary.
func describeOperation(op planner.Operation) string {
	var parts []string
	if op.Edits.Namespace != "" {
		parts = append(parts, fmt.Sprintf("namespace=%s (%s)", op.Edits.Namespace, op.Decision.Source))
	}
	if op.Edits.CompileSdk != 0 {
		parts = append(parts, fmt.Sprintf("compileSdk=%d", op.Edits.CompileSdk))
	}
	if op.Edits.JavaVersion != "" {
		parts = append(parts, "java="+op.Edits.JavaVersion)
	}
	if op.Edits.JvmTarget != "" {
		parts = append(parts, "jvmTarget="+op.Edits.JvmTarget)
	}
	return op.Subproject + ": " + strings.Join(parts, " ")
}

// printPlan prints operations and conflicts.
func printPlan(w io.Writer, plan *planner.FixPlan) {
	PrintSection(w, "Plan")
	if len(plan.Operations) == 0 {
		PrintEmptyState(w, "No build file edits needed")
	} else {
		PrintInfo(w, fmt.Sprintf("Would patch %s:", PrintCount(len(plan.Operations), "build file", "build files")))
		items := make([]string, 0, len(plan.Operations))
		for _, op := range plan.Operations {
			items = append(items, describeOperation(op))
		}
		PrintList(w, items, 1)
	}

	if len(plan.UpToDate) > 0 {
		PrintInfo(w, fmt.Sprintf("Up to date: %s", PrintCount(len(plan.UpToDate), "subproject", "subprojects")))
	}

	if plan.HasConflicts() {
		PrintSection(w, "Conflicts")
		for _, c := range plan.Conflicts {
			PrintError(w, fmt.Sprintf("%s: %s (%s)", c.Subproject, c.Reason, c.Path))
		}
	}
}
