package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// fitTolerance absorbs rounding in page sizes converted from points.
const fitTolerance = 1e-6

// Paginator lays document blocks out on pages. Before a block is drawn it checks whether
// the block fits above the bottom margin and starts a new page when it does not.
type Paginator struct {
	pdf    *fpdf.Fpdf
	style  Style
	tr     func(string) string
	images int
}

// NewPaginator prepares an empty PDF. The created time is written as the document's
// creation and modification date so identical input yields identical bytes.
func NewPaginator(style Style, title string, created time.Time, compress bool) *Paginator {
	pdf := fpdf.New("P", "mm", style.PageSize, "")
	pdf.SetMargins(style.Margin, style.Margin, style.Margin)
	pdf.SetAutoPageBreak(true, style.BottomMargin)
	pdf.SetCompression(compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetTitle(title, true)
	pdf.SetCreator("malaria-atlas", false)

	p := &Paginator{
		pdf:   pdf,
		style: style,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
	}
	pdf.SetFooterFunc(p.footer)
	return p
}

// Render draws every block in order and returns the finished document.
func (p *Paginator) Render(doc *Document) ([]byte, error) {
	p.pdf.AddPage()

	for _, b := range doc.Blocks {
		switch blk := b.(type) {
		case HeaderBlock:
			p.header(blk)
		case SectionBlock:
			p.section(blk)
		case SummaryRowBlock:
			p.summaryRow(blk)
		case ChartBlock:
			p.chart(blk)
		case PlaceholderBlock:
			p.placeholder(blk)
		case SpacerBlock:
			p.pdf.Ln(blk.Height)
		default:
			return nil, fmt.Errorf("unsupported block %T", b)
		}
		if p.pdf.Err() {
			return nil, p.pdf.Error()
		}
	}

	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// PageCount is the number of pages drawn so far.
func (p *Paginator) PageCount() int {
	return p.pdf.PageCount()
}

func (p *Paginator) fits(h float64) bool {
	_, pageHeight := p.pdf.GetPageSize()
	return p.pdf.GetY()+h <= pageHeight-p.style.BottomMargin+fitTolerance
}

// usableHeight is the room between the top margin and the bottom margin of a fresh page.
func (p *Paginator) usableHeight() float64 {
	_, pageHeight := p.pdf.GetPageSize()
	return pageHeight - p.style.Margin - p.style.BottomMargin
}

func (p *Paginator) ensure(h float64) {
	if !p.fits(h) {
		p.pdf.AddPage()
	}
}

func (p *Paginator) setTextColor(c RGB) {
	p.pdf.SetTextColor(c[0], c[1], c[2])
}

func (p *Paginator) header(b HeaderBlock) {
	s := p.style
	if b.Logo != nil {
		name := p.registerImage(b.Logo)
		p.pdf.ImageOptions(name, s.LogoX, s.LogoY, s.LogoWidth, 0, false,
			fpdf.ImageOptions{ImageType: b.Logo.Format}, 0, "")
	}

	align := b.Align
	if align != AlignRight {
		align = AlignCenter
	}

	p.setTextColor(s.Text)
	p.pdf.SetFont(s.FontFamily, "B", s.TitleSize)
	p.pdf.CellFormat(0, s.TitleHeight, p.tr(b.Title), "", 1, align, false, 0, "")
	p.pdf.SetFont(s.FontFamily, "I", s.DateSize)
	p.pdf.CellFormat(0, s.DateHeight, p.tr(b.Date), "", 1, align, false, 0, "")
	p.pdf.Ln(s.HeaderAfter)
}

func (p *Paginator) section(b SectionBlock) {
	s := p.style
	// keep the heading on the same page as the first line below it
	p.ensure(s.SectionHeight + s.SectionAfter + s.RowHeight)

	p.setTextColor(s.Text)
	p.pdf.SetFillColor(s.Band[0], s.Band[1], s.Band[2])
	p.pdf.SetFont(s.FontFamily, "B", s.SectionSize)
	p.pdf.CellFormat(0, s.SectionHeight, p.tr("  "+b.Title), "", 1, "L", true, 0, "")
	p.pdf.Ln(s.SectionAfter)
}

func (p *Paginator) summaryRow(b SummaryRowBlock) {
	s := p.style
	p.ensure(s.RowHeight)

	p.setTextColor(s.Text)
	p.pdf.SetFont(s.FontFamily, "", s.RowSize)
	p.pdf.CellFormat(s.LabelWidth, s.RowHeight, p.tr(b.Label+":"), "", 0, "L", false, 0, "")

	p.pdf.SetFont(s.FontFamily, "B", s.RowSize)
	if b.Warning {
		p.setTextColor(s.Warning)
	}
	p.pdf.CellFormat(0, s.RowHeight, p.tr(b.Value), "", 1, "L", false, 0, "")
	p.setTextColor(s.Text)
}

func (p *Paginator) chartTitle(title string) {
	s := p.style
	p.setTextColor(s.Text)
	p.pdf.SetFont(s.FontFamily, "B", s.ChartTitleSize)
	p.pdf.CellFormat(0, s.ChartTitleHeight, p.tr(title), "", 1, "L", false, 0, "")
}

func (p *Paginator) chart(b ChartBlock) {
	s := p.style
	width, height := s.ImageSize(b.Image, p.usableHeight()-s.ChartTitleHeight)
	p.ensure(s.ChartTitleHeight + height)

	p.chartTitle(b.Title)
	name := p.registerImage(b.Image)
	left, _, _, _ := p.pdf.GetMargins()
	y := p.pdf.GetY()
	p.pdf.ImageOptions(name, left, y, width, height, false,
		fpdf.ImageOptions{ImageType: b.Image.Format}, 0, "")
	p.pdf.SetY(y + height)
	p.pdf.Ln(s.BlockSpacing)
}

func (p *Paginator) placeholder(b PlaceholderBlock) {
	s := p.style
	p.ensure(s.ChartTitleHeight + s.RowHeight)

	p.chartTitle(b.Title)
	p.setTextColor(s.Muted)
	p.pdf.SetFont(s.FontFamily, "I", s.RowSize)
	p.pdf.CellFormat(0, s.RowHeight, p.tr(b.Message), "", 1, "L", false, 0, "")
	p.setTextColor(s.Text)
	p.pdf.Ln(s.BlockSpacing)
}

func (p *Paginator) footer() {
	s := p.style
	p.pdf.SetY(-15)
	p.setTextColor(s.Muted)
	p.pdf.SetFont(s.FontFamily, "I", 8)
	p.pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", p.pdf.PageNo()), "", 0, "C", false, 0, "")
	p.setTextColor(s.Text)
}

func (p *Paginator) registerImage(img *Image) string {
	name := fmt.Sprintf("image-%03d", p.images)
	p.images++
	p.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: img.Format}, bytes.NewReader(img.Data))
	return name
}
