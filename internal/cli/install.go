package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cha9ro/agent-skills/internal/engine"
	"github.com/cha9ro/agent-skills/internal/report"
)

var (
	installForce  bool
	installDryRun bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install skills declared in the manifest",
	Long: `Install every skill the manifest declares, copying each skill directory
from its source into the configured destination.

Existing destinations are skipped unless --force is given. Entries are
installed in manifest order; a failing entry is reported and the remaining
entries still install.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		req := &engine.InstallRequest{
			ManifestPath: manifestPath,
			DryRun:       installDryRun,
			Force:        installForce,
		}

		result, err := eng.Install(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
		} else {
			printInstallResult(result)
		}

		if !result.Summary.OK() {
			return fmt.Errorf("%s failed", PrintCount(result.Summary.Failed, "entry", "entries"))
		}
		return nil
	},
}

func printInstallResult(result *engine.InstallResult) {
	if result.DryRun {
		PrintSection("Dry Run")
	}

	for _, out := range result.Outcomes {
		switch out.Status {
		case report.StatusInstalled, report.StatusOverwritten:
			PrintSuccess(fmt.Sprintf("%s (%s) %s", out.ID, out.Status, out.To))
		case report.StatusWouldInstall, report.StatusWouldOverwrite:
			PrintInfo(fmt.Sprintf("%s: %s %s", out.ID, out.Status, out.To))
		case report.StatusSkipped, report.StatusWouldSkip:
			PrintDim(fmt.Sprintf("%s: destination exists, skipped (use --force to overwrite)", out.ID))
		case report.StatusFailed, report.StatusWouldFail:
			PrintError(fmt.Sprintf("%s: %s", out.ID, out.Error))
		}
		if out.Warning != "" {
			PrintWarning(fmt.Sprintf("%s: %s", out.ID, out.Warning))
		}
	}

	PrintSection("Summary")
	PrintLabelValue("Installed", fmt.Sprintf("%d", result.Summary.Installed))
	PrintLabelValue("Overwritten", fmt.Sprintf("%d", result.Summary.Overwritten))
	PrintLabelValue("Skipped", fmt.Sprintf("%d", result.Summary.Skipped))
	PrintLabelValue("Failed", fmt.Sprintf("%d", result.Summary.Failed))
	PrintLabelValue("Elapsed", result.Elapsed.String())

	if result.DryRun {
		PrintDim("run again without --dry-run to install")
	}
}

func init() {
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Overwrite existing destinations")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Show what would be installed without copying files")
}
