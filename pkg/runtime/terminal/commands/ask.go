package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

type AskCmd struct {
	filterFlags
	deps *Deps
}

func NewAskCmd(deps *Deps) *cobra.Command {
	ac := &AskCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the surveillance advisor about the current data",
		Args:  cobra.MinimumNArgs(1),
		RunE:  ac.run,
	}
	ac.register(cmd)
	return cmd
}

func (ac *AskCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	filter, err := ac.deps.Explorer.ResolveFilter(ctx, ac.filter())
	if err != nil {
		return err
	}
	kpis, err := ac.deps.Explorer.KPIs(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to compute KPIs: %w", err)
	}

	answer, err := ac.deps.Advisor.Ask(ctx, strings.Join(args, " "), domain.DashboardContext{
		Region:     filter.RegionLabel(),
		TotalCases: kpis.TotalCases,
		Risk:       kpis.Risk,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
