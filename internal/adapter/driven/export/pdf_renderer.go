package export

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diillson/aws-cost-chart/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
)

// Layout in mm on a landscape A4 page.
const (
	pageMargin    = 8.0
	legendWidth   = 62.0
	panelGap      = 6.0
	panelTitleH   = 6.0
	axisLabelW    = 12.0
	tickLabelH    = 7.0
	barFill       = 0.8
	legendSwatchW = 7.0
	legendSwatchH = 4.0
	legendMaxRowH = 6.0
)

// PDFChartRenderer desenha o modelo como barras empilhadas, um painel por
// conta, com a legenda à direita.
type PDFChartRenderer struct{}

// NewPDFChartRenderer creates a PDF renderer.
func NewPDFChartRenderer() *PDFChartRenderer {
	return &PDFChartRenderer{}
}

// Extension implements repository.ChartRenderer.
func (r *PDFChartRenderer) Extension() string { return FormatPDF }

// Render implements repository.ChartRenderer.
func (r *PDFChartRenderer) Render(model *entity.ChartModel, outputPath string) (string, error) {
	if err := prepareOutput(outputPath); err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	areaW := pageW - 2*pageMargin - legendWidth
	areaH := pageH - 2*pageMargin

	if len(model.Panels) == 0 {
		pdf.SetFont("Arial", "I", 12)
		pdf.SetTextColor(100, 100, 100)
		pdf.Text(pageMargin, pageMargin+10, "No accounts to display")
	}

	rows, cols := gridShape(len(model.Panels))
	if rows > 0 {
		cellW := (areaW - float64(cols-1)*panelGap) / float64(cols)
		cellH := (areaH - float64(rows-1)*panelGap) / float64(rows)
		for i, panel := range model.Panels {
			x := pageMargin + float64(i%cols)*(cellW+panelGap)
			y := pageMargin + float64(i/cols)*(cellH+panelGap)
			drawPanel(pdf, tr, panel, x, y, cellW, cellH)
		}
	}

	drawLegend(pdf, tr, model.Legend, pageW-pageMargin-legendWidth+4, pageMargin, legendWidth-4, areaH)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputPath)
}

// gridShape devolve linhas e colunas: até 3 contas em uma coluna, até 12 em
// duas, acima disso em três.
func gridShape(n int) (rows, cols int) {
	switch {
	case n <= 0:
		return 0, 0
	case n <= 3:
		return n, 1
	case n <= 12:
		return (n + 1) / 2, 2
	default:
		return (n + 2) / 3, 3
	}
}

// tickLabel returns the two lines of a date tick. The month is shown on the
// first and last dates and on the first day of each month.
func tickLabel(dates []time.Time, i int) (day, month string) {
	d := dates[i]
	day = strconv.Itoa(d.Day())
	if i == 0 || i == len(dates)-1 || d.Day() == 1 {
		month = d.Format("Jan")
	}
	return day, month
}

// axisScale returns the top of the value axis and the tick step.
func axisScale(axis entity.YAxis) (top, step float64) {
	if axis.Pinned || axis.Max <= 0 {
		top = axis.Max
		if top <= 0 {
			top = 1
		}
		return top, top / 4
	}
	step = niceStep(axis.Max / 4)
	top = math.Ceil(axis.Max/step) * step
	return top, step
}

func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	frac := raw / exp
	switch {
	case frac <= 1:
		return exp
	case frac <= 2:
		return 2 * exp
	case frac <= 5:
		return 5 * exp
	default:
		return 10 * exp
	}
}

func formatAxisValue(v, step float64) string {
	switch {
	case step >= 1:
		return strconv.FormatFloat(v, 'f', 0, 64)
	case step >= 0.1:
		return strconv.FormatFloat(v, 'f', 1, 64)
	default:
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
}

func drawPanel(pdf *gofpdf.Fpdf, tr func(string) string, panel entity.Panel, x, y, w, h float64) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetTextColor(40, 40, 40)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, panelTitleH, tr(panel.Title()), "", 0, "C", false, 0, "")

	plotX := x + axisLabelW
	plotY := y + panelTitleH
	plotW := w - axisLabelW
	plotH := h - panelTitleH - tickLabelH
	if plotW <= 0 || plotH <= 0 {
		return
	}

	top, step := axisScale(panel.YAxis)

	// Grade horizontal e rótulos do eixo Y.
	pdf.SetFont("Arial", "", 5)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetDrawColor(225, 225, 225)
	pdf.SetLineWidth(0.1)
	for v := 0.0; v <= top+step/2; v += step {
		ly := plotY + plotH - v/top*plotH
		pdf.Line(plotX, ly, plotX+plotW, ly)
		label := formatAxisValue(v, step)
		pdf.Text(plotX-pdf.GetStringWidth(label)-1, ly+1, label)
	}

	n := len(panel.Dates)
	if n > 0 {
		slot := plotW / float64(n)
		barW := slot * barFill
		for i := range panel.Dates {
			bx := plotX + float64(i)*slot + (slot-barW)/2
			base := plotY + plotH
			for _, s := range panel.Series {
				v := s.Values[i]
				if v <= 0 {
					continue
				}
				bh := v / top * plotH
				if base-bh < plotY {
					bh = base - plotY
				}
				if bh <= 0 {
					continue
				}
				c := s.Style.Color
				pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
				pdf.Rect(bx, base-bh, barW, bh, "F")
				drawHatch(pdf, s.Style.Hatch, bx, base-bh, barW, bh)
				base -= bh
			}

			day, month := tickLabel(panel.Dates, i)
			pdf.SetFont("Arial", "", 5)
			pdf.SetTextColor(90, 90, 90)
			cx := bx + barW/2
			pdf.Text(cx-pdf.GetStringWidth(day)/2, plotY+plotH+2.5, day)
			if month != "" {
				pdf.Text(cx-pdf.GetStringWidth(month)/2, plotY+plotH+5, month)
			}
		}
	}

	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.2)
	pdf.Line(plotX, plotY+plotH, plotX+plotW, plotY+plotH)
	pdf.Line(plotX, plotY, plotX, plotY+plotH)
}

func drawLegend(pdf *gofpdf.Fpdf, tr func(string) string, legend []entity.LegendEntry, x, y, w, h float64) {
	if len(legend) == 0 {
		return
	}
	rowH := math.Min(legendMaxRowH, h/float64(len(legend)))
	fontSize := math.Min(7, rowH*2.2)

	pdf.SetFont("Arial", "", fontSize)
	pdf.SetTextColor(40, 40, 40)
	for i, e := range legend {
		ry := y + float64(i)*rowH
		sh := math.Min(legendSwatchH, rowH*0.8)
		c := e.Style.Color
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.SetDrawColor(150, 150, 150)
		pdf.SetLineWidth(0.1)
		pdf.Rect(x, ry, legendSwatchW, sh, "FD")
		drawHatch(pdf, e.Style.Hatch, x, ry, legendSwatchW, sh)

		pdf.SetXY(x+legendSwatchW+1.5, ry)
		pdf.CellFormat(w-legendSwatchW-1.5, sh, tr(e.Label), "", 0, "L", false, 0, "")
	}
}
