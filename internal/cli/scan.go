package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/androidfix/internal/engine"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Show the namespace decision for every Android subproject",
	Long: `Discover the Android subprojects of the Flutter project containing the
current directory and show which namespace each one has or would be assigned.`,
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

		result, err := eng.Scan(context.Background(), &engine.ScanRequest{
			CWD:        cwd,
			ConfigPath: configPath,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		PrintSection(out, fmt.Sprintf("%s (%s)", result.Project, result.Root))
		if len(result.Entries) == 0 {
			PrintEmptyState(out, "No Android subprojects found. Run `flutter pub get` first.")
			return nil
		}

		rows := make([][]string, 0, len(result.Entries))
		needs := 0
		for _, entry := range result.Entries {
			ns := entry.Decision.ResolvedNamespace
			source := string(entry.Decision.Source)
			switch entry.Status {
			case engine.StatusDeclared:
				ns = entry.Info.Namespace
				source = "build file"
			case engine.StatusNeedsNamespace:
				needs++
			}
			rows = append(rows, []string{entry.Name, ns, source, entry.Status})
		}
		PrintTable(out, []string{"SUBPROJECT", "NAMESPACE", "SOURCE", "STATUS"}, rows, 3)

		_, _ = fmt.Fprintln(out)
		for _, entry := range result.Entries {
			if entry.Status == engine.StatusError {
				PrintError(out, fmt.Sprintf("%s: %s", entry.Name, entry.Error))
			}
		}
		if needs > 0 {
			PrintWarning(out, fmt.Sprintf("%s without a namespace. Run 'androidfix apply' to fix.",
				PrintCount(needs, "subproject", "subprojects")))
		} else {
			PrintSuccess(out, "Every readable subproject declares a namespace")
		}
		return nil
	},
}
