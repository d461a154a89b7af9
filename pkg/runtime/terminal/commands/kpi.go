package commands

import (
	"fmt"

	"github.com/de-tools/malaria-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type KPICmd struct {
	filterFlags
	deps     *Deps
	reporter *export.Reporter
}

func NewKPICmd(deps *Deps, reporter *export.Reporter) *cobra.Command {
	kc := &KPICmd{deps: deps, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Show the surveillance KPIs and regional totals",
		RunE:  kc.run,
	}
	kc.register(cmd)
	return cmd
}

func (kc *KPICmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter, err := kc.deps.Explorer.ResolveFilter(ctx, kc.filter())
	if err != nil {
		return err
	}
	snapshot, err := kc.deps.Explorer.Snapshot(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load dashboard snapshot: %w", err)
	}

	return kc.reporter.Handle(&snapshot)
}
