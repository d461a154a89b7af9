package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type ReportCmd struct {
	filterFlags
	out     string
	publish bool
	deps    *Deps
}

func NewReportCmd(deps *Deps) *cobra.Command {
	rc := &ReportCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the PDF surveillance report",
		RunE:  rc.run,
	}
	rc.register(cmd)
	cmd.Flags().StringVar(&rc.out, "out", "", "Output file (default: Malaria_Surveillance_<year>.pdf)")
	cmd.Flags().BoolVar(&rc.publish, "publish", false, "Upload the report to the configured bucket")
	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	artifact, err := rc.deps.Reports.Generate(ctx, rc.filter())
	if err != nil {
		return err
	}

	out := rc.out
	if out == "" {
		out = artifact.FileName
	}
	if err := os.WriteFile(out, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d pages)\n", out, artifact.Pages)
	for _, title := range artifact.ChartFailures {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: chart %q could not be rendered\n", title)
	}

	if rc.publish {
		location, err := rc.deps.Reports.Publish(ctx, artifact)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report published to %s\n", location)
	}
	return nil
}
