package report

// RGB is a color in 0-255 components.
type RGB [3]int

var (
	colorText    = RGB{0, 0, 0}
	colorWarning = RGB{231, 76, 60}   // red
	colorMuted   = RGB{127, 140, 141} // gray
	colorBand    = RGB{240, 240, 240} // section heading fill
)

const (
	AlignCenter = "C"
	AlignRight  = "R"
)

// Style holds the page geometry and typography of the report. Lengths are in millimeters.
type Style struct {
	PageSize     string
	Margin       float64
	BottomMargin float64
	FontFamily   string

	HeaderAlign string
	TitleSize   float64
	TitleHeight float64
	DateSize    float64
	DateHeight  float64
	HeaderAfter float64
	LogoX       float64
	LogoY       float64
	LogoWidth   float64

	SectionSize   float64
	SectionHeight float64
	SectionAfter  float64

	RowSize    float64
	RowHeight  float64
	LabelWidth float64

	ChartTitleSize   float64
	ChartTitleHeight float64
	ImageWidth       float64
	BlockSpacing     float64

	Text    RGB
	Warning RGB
	Muted   RGB
	Band    RGB
}

// DefaultStyle is an A4 portrait layout with a 170mm image column.
func DefaultStyle() Style {
	return Style{
		PageSize:     "A4",
		Margin:       10,
		BottomMargin: 20,
		FontFamily:   "Helvetica",

		HeaderAlign: AlignCenter,
		TitleSize:   24,
		TitleHeight: 20,
		DateSize:    10,
		DateHeight:  10,
		HeaderAfter: 10,
		LogoX:       10,
		LogoY:       8,
		LogoWidth:   25,

		SectionSize:   16,
		SectionHeight: 12,
		SectionAfter:  5,

		RowSize:    12,
		RowHeight:  10,
		LabelWidth: 50,

		ChartTitleSize:   12,
		ChartTitleHeight: 10,
		ImageWidth:       170,
		BlockSpacing:     10,

		Text:    colorText,
		Warning: colorWarning,
		Muted:   colorMuted,
		Band:    colorBand,
	}
}

// ImageSize is the display size of an image scaled to the style's image width. When that
// would be taller than maxHeight the image is scaled down to maxHeight, keeping its aspect ratio.
func (s Style) ImageSize(img *Image, maxHeight float64) (width, height float64) {
	if img == nil || img.Width == 0 || img.Height == 0 {
		return 0, 0
	}
	width = s.ImageWidth
	height = width * float64(img.Height) / float64(img.Width)
	if maxHeight > 0 && height > maxHeight {
		height = maxHeight
		width = height * float64(img.Width) / float64(img.Height)
	}
	return width, height
}
