package report

// Block is one unit of report content. The set of blocks is closed; the Paginator
// decides where each one lands on the page.
type Block interface {
	block()
}

// HeaderBlock is the band at the top of the first page.
type HeaderBlock struct {
	Title string
	Date  string
	Align string
	Logo  *Image
}

// SectionBlock is a filled section heading.
type SectionBlock struct {
	Title string
}

// SummaryRowBlock is one metric row of the summary table.
type SummaryRowBlock struct {
	Label   string
	Value   string
	Warning bool
}

// ChartBlock is a titled embedded chart image.
type ChartBlock struct {
	Title string
	Image *Image
}

// PlaceholderBlock stands in for a chart whose image could not be produced.
type PlaceholderBlock struct {
	Title   string
	Message string
}

// SpacerBlock adds vertical space.
type SpacerBlock struct {
	Height float64
}

func (HeaderBlock) block()      {}
func (SectionBlock) block()     {}
func (SummaryRowBlock) block()  {}
func (ChartBlock) block()       {}
func (PlaceholderBlock) block() {}
func (SpacerBlock) block()      {}
