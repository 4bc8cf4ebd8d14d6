package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/androidfix/internal/config"
	"github.com/danieljhkim/androidfix/internal/fsops"
)

var resolveManifest string

var resolveCmd = &cobra.Command{
	Use:   "resolve <subproject>",
	Short: "Print the namespace a subproject would be assigned",
	Long: `Resolve the Android namespace for a single subproject name.

The first package="..." attribute in --manifest wins. Otherwise a configured
override is used, and finally com.example.<name> with '-' replaced by '_'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := fsops.NewRealFS()

		cfg := config.Default()
		if configPath != "" {
			loaded, err := config.Load(fs, configPath, true)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		var text string
		if resolveManifest != "" {
			data, err := fs.ReadFile(resolveManifest)
			if err != nil {
				return fmt.Errorf("failed to read manifest: %w", err)
			}
			text = string(data)
		}

		decision := cfg.Resolver().Decide(args[0], text)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, decision)
		}
		_, _ = fmt.Fprintln(out, decision.ResolvedNamespace)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveManifest, "manifest", "m", "", "Path to the subproject's AndroidManifest.xml")
}
