package export

import (
	"math"

	"github.com/jung-kurt/gofpdf"
)

// hatchSpacing is the gap in mm between strokes of a single-character hatch.
// Repeating a character (e.g. "////") divides the gap accordingly.
const hatchSpacing = 2.4

type hatchSpec struct {
	forward  int // '/'
	backward int // '\\'
	vertical int // '|'
	flat     int // '-'
	dots     int // '.'
	rings    int // 'o'
	bigRings int // 'O'
	stars    int // '*'
}

func parseHatch(pattern string) hatchSpec {
	var h hatchSpec
	for _, c := range pattern {
		switch c {
		case '/':
			h.forward++
		case '\\':
			h.backward++
		case '|':
			h.vertical++
		case '-':
			h.flat++
		case '+':
			h.vertical++
			h.flat++
		case 'x', 'X':
			h.forward++
			h.backward++
		case '.':
			h.dots++
		case 'o':
			h.rings++
		case 'O':
			h.bigRings++
		case '*':
			h.stars++
		}
	}
	return h
}

func spacing(density int) float64 {
	return hatchSpacing / float64(density)
}

// drawHatch desenha o padrão em traços brancos, recortado ao retângulo.
func drawHatch(pdf *gofpdf.Fpdf, pattern string, x, y, w, h float64) {
	if pattern == "" || w <= 0 || h <= 0 {
		return
	}
	spec := parseHatch(pattern)

	pdf.ClipRect(x, y, w, h, false)
	defer pdf.ClipEnd()

	pdf.SetDrawColor(255, 255, 255)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetLineWidth(0.15)

	if spec.forward > 0 {
		s := spacing(spec.forward)
		for off := -h; off <= w; off += s {
			pdf.Line(x+off, y+h, x+off+h, y)
		}
	}
	if spec.backward > 0 {
		s := spacing(spec.backward)
		for off := -h; off <= w; off += s {
			pdf.Line(x+off, y, x+off+h, y+h)
		}
	}
	if spec.vertical > 0 {
		s := spacing(spec.vertical)
		for xi := x + s/2; xi < x+w; xi += s {
			pdf.Line(xi, y, xi, y+h)
		}
	}
	if spec.flat > 0 {
		s := spacing(spec.flat)
		for yi := y + h - s/2; yi > y; yi -= s {
			pdf.Line(x, yi, x+w, yi)
		}
	}
	if spec.dots > 0 {
		forEachPoint(x, y, w, h, spacing(spec.dots), func(px, py float64) {
			pdf.Circle(px, py, 0.15, "F")
		})
	}
	if spec.rings > 0 {
		s := spacing(spec.rings)
		forEachPoint(x, y, w, h, s, func(px, py float64) {
			pdf.Circle(px, py, s/5, "D")
		})
	}
	if spec.bigRings > 0 {
		s := spacing(spec.bigRings)
		forEachPoint(x, y, w, h, s, func(px, py float64) {
			pdf.Circle(px, py, s/3, "D")
		})
	}
	if spec.stars > 0 {
		s := spacing(spec.stars)
		r := s / 4
		forEachPoint(x, y, w, h, s, func(px, py float64) {
			for i := 0; i < 3; i++ {
				a := float64(i) * math.Pi / 3
				dx, dy := r*math.Cos(a), r*math.Sin(a)
				pdf.Line(px-dx, py-dy, px+dx, py+dy)
			}
		})
	}
}

// forEachPoint visita uma grade escalonada de pontos dentro do retângulo.
func forEachPoint(x, y, w, h, s float64, fn func(px, py float64)) {
	row := 0
	for py := y + h - s/2; py > y-s/2; py -= s {
		shift := 0.0
		if row%2 == 1 {
			shift = s / 2
		}
		for px := x + s/2 + shift; px < x+w+s/2; px += s {
			fn(px, py)
		}
		row++
	}
}
