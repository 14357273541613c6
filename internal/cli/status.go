package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cha9ro/agent-skills/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show install state of every manifest entry",
	Long: `Compare each declared skill's destination against its source.

A destination is reported as missing, installed (byte-identical to the
source), or modified (content has drifted). Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		result, err := eng.Status(context.Background(), &engine.StatusRequest{ManifestPath: manifestPath})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintLabelValue("Manifest dir", result.BaseDir)
		fmt.Println()

		rows := make([][]string, 0, len(result.Entries))
		hasError := false
		for _, entry := range result.Entries {
			detail := entry.Detail
			if entry.State == engine.StateError {
				hasError = true
			}
			rows = append(rows, []string{entry.ID, string(entry.State), detail})
		}
		PrintTable([]string{"ID", "STATE", "DETAIL"}, rows)

		if hasError {
			return fmt.Errorf("some entries could not be resolved")
		}
		return nil
	},
}
