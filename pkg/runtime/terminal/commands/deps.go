package commands

import (
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/services/advisor"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard"
	"github.com/de-tools/malaria-atlas/pkg/services/news"
	"github.com/de-tools/malaria-atlas/pkg/services/reporting"
	"github.com/spf13/cobra"
)

// Deps holds the services the commands run against. The CLI fills it in before
// a subcommand runs.
type Deps struct {
	Explorer dashboard.Explorer
	Reports  *reporting.Service
	News     news.Feed
	Advisor  advisor.Advisor
}

type filterFlags struct {
	year   int
	region string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.year, "year", 0, "Reporting year (default: latest available)")
	cmd.Flags().StringVar(&f.region, "region", domain.AllRegions, "Focus region")
}

func (f *filterFlags) filter() domain.Filter {
	return domain.Filter{Year: f.year, Region: f.region}
}
