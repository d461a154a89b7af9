package domain

// DashboardContext is the slice of dashboard state shared with the advisor model.
type DashboardContext struct {
	Region     string
	TotalCases int
	Risk       RiskLevel
}
