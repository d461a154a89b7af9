package surveillance

import (
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// HighRiskPrevalence is the average prevalence (percent) above which a region is high risk.
const HighRiskPrevalence = 20.0

var printer = message.NewPrinter(language.English)

// ComputeKPIs sums and averages the records. Empty input yields zero totals and moderate risk.
func ComputeKPIs(records []domain.Record) domain.KPIs {
	var k domain.KPIs
	var prevalence float64
	for _, r := range records {
		k.TotalCases += r.Cases
		k.TotalRecoveries += r.Recoveries
		k.TotalDeaths += r.Deaths
		prevalence += r.PrevalenceRate
	}
	if len(records) > 0 {
		k.AvgPrevalence = prevalence / float64(len(records))
	}
	k.Risk = RiskFor(k.AvgPrevalence)
	return k
}

func RiskFor(avgPrevalence float64) domain.RiskLevel {
	if avgPrevalence > HighRiskPrevalence {
		return domain.RiskHigh
	}
	return domain.RiskModerate
}

// FormatCount renders n with thousands separators, e.g. 12,345.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatPercent renders a prevalence with one decimal, e.g. 17.3%.
func FormatPercent(p float64) string {
	return printer.Sprintf("%.1f%%", p)
}
