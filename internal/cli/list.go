package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cha9ro/agent-skills/internal/engine"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills available in the manifest's sources",
	Long:  `Walk each source's skills root and list every skill directory found there.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		result, err := eng.ListSkills(context.Background(), &engine.ListRequest{ManifestPath: manifestPath})
		if err != nil {
			return err
		}

		failed := 0
		for _, src := range result.Sources {
			if src.Error != "" {
				failed++
			}
		}

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
		} else {
			for _, src := range result.Sources {
				PrintSection(fmt.Sprintf("Source: %s", src.Source))
				if src.Error != "" {
					PrintError(src.Error)
					continue
				}
				if len(src.Skills) == 0 {
					PrintDim("no skills found")
					continue
				}
				rows := make([][]string, 0, len(src.Skills))
				for _, skill := range src.Skills {
					rows = append(rows, []string{skill.RelPath, skill.Name, skill.Description})
				}
				PrintTable([]string{"PATH", "NAME", "DESCRIPTION"}, rows)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%s could not be listed", PrintCount(failed, "source", "sources"))
		}
		return nil
	},
}
