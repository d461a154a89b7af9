package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/malaria-atlas/pkg/export"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	filterFlags
	out  string
	deps *Deps
}

func NewExportCmd(deps *Deps) *cobra.Command {
	ec := &ExportCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered raw records as an xlsx workbook",
		RunE:  ec.run,
	}
	ec.register(cmd)
	cmd.Flags().StringVar(&ec.out, "out", "", "Output file (default: Malaria_Data_<year>.xlsx)")
	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter, err := ec.deps.Explorer.ResolveFilter(ctx, ec.filter())
	if err != nil {
		return err
	}
	records, err := ec.deps.Explorer.Records(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	out := ec.out
	if out == "" {
		out = export.FileName(filter)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := export.WriteWorkbook(f, records); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(records), out)
	return f.Close()
}
