package commands

import (
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewNewsCmd(deps *Deps, reporter *export.NewsReporter) *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show the latest field updates and global health news",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return reporter.Handle(deps.News.Fetch(region))
		},
	}
	cmd.Flags().StringVar(&region, "region", domain.AllRegions, "Only show news mentioning this region")
	return cmd
}
