package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cha9ro/agent-skills/internal/engine"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the manifest without installing",
	Long: `Check the manifest schema and every install entry's source reference.

Reference checks are static: source names must be declared, source types
supported, and relative paths must stay inside their source root. No
destination is touched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		result, err := eng.Validate(context.Background(), &engine.ValidateRequest{ManifestPath: manifestPath})
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
		} else {
			PrintLabelValue("Sources", fmt.Sprintf("%d", result.SourceCount))
			PrintLabelValue("Entries", fmt.Sprintf("%d", result.EntryCount))
			for _, problem := range result.Problems {
				PrintError(fmt.Sprintf("%s: %s", problem.EntryID, problem.Detail))
			}
			if result.Valid() {
				PrintSuccess("manifest is valid")
			}
		}

		if !result.Valid() {
			return fmt.Errorf("%s failed validation", PrintCount(len(result.Problems), "entry", "entries"))
		}
		return nil
	},
}
