package http

import (
	"fmt"
	"math"
	"strconv"

	"expensetracker/internal/storage"
)

// Charts are rendered server-side: bars as scaled CSS widths, pies and
// lines as inline SVG. The first column labels a point; the last column
// supplies its numeric value.

var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
	"#1f77b4", "#d62728", "#2ca02c",
}

type barView struct {
	Rows []barRow
}

type barRow struct {
	Label string
	Value string
	Width int
}

type pieView struct {
	Slices []pieSlice
}

type pieSlice struct {
	Path  string
	Color string
	Label string
	Pct   string
}

type lineView struct {
	Points string
	First  string
	Last   string
}

// chartPoint is one labeled numeric value extracted from a result.
type chartPoint struct {
	label string
	value float64
}

func chartPoints(res *storage.Result) []chartPoint {
	if len(res.Columns) < 2 {
		return nil
	}
	last := len(res.Columns) - 1
	points := make([]chartPoint, 0, len(res.Rows))
	for _, row := range res.Rows {
		v, err := strconv.ParseFloat(row[last], 64)
		if err != nil {
			continue
		}
		points = append(points, chartPoint{label: row[0], value: v})
	}
	return points
}

func buildBar(res *storage.Result) *barView {
	points := chartPoints(res)
	if len(points) == 0 {
		return nil
	}

	var max float64
	for _, p := range points {
		if p.value > max {
			max = p.value
		}
	}

	bars := &barView{}
	for _, p := range points {
		width := 0
		if max > 0 && p.value > 0 {
			width = int(math.Round(p.value / max * 100))
			if width < 2 { // keep tiny values visible
				width = 2
			}
		}
		bars.Rows = append(bars.Rows, barRow{
			Label: p.label,
			Value: strconv.FormatFloat(p.value, 'f', 2, 64),
			Width: width,
		})
	}
	return bars
}

func buildPie(res *storage.Result) *pieView {
	points := chartPoints(res)
	if len(points) == 0 {
		return nil
	}

	var total float64
	for _, p := range points {
		if p.value > 0 {
			total += p.value
		}
	}
	if total <= 0 {
		return nil
	}

	const cx, cy, r = 100.0, 100.0, 90.0
	pie := &pieView{}
	angle := -math.Pi / 2 // start at twelve o'clock
	for i, p := range points {
		if p.value <= 0 {
			continue
		}
		frac := p.value / total
		slice := pieSlice{
			Color: palette[i%len(palette)],
			Label: p.label,
			Pct:   strconv.FormatFloat(frac*100, 'f', 1, 64) + "%",
		}
		if frac >= 0.9999 {
			// Single slice: a full circle, which an arc path cannot express.
			slice.Path = fmt.Sprintf("M %.2f %.2f m -%.2f 0 a %.2f %.2f 0 1 0 %.2f 0 a %.2f %.2f 0 1 0 -%.2f 0",
				cx, cy, r, r, r, 2*r, r, r, 2*r)
		} else {
			end := angle + frac*2*math.Pi
			x1, y1 := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
			x2, y2 := cx+r*math.Cos(end), cy+r*math.Sin(end)
			large := 0
			if frac > 0.5 {
				large = 1
			}
			slice.Path = fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
				cx, cy, x1, y1, r, r, large, x2, y2)
			angle = end
		}
		pie.Slices = append(pie.Slices, slice)
	}
	return pie
}

func buildLine(res *storage.Result) *lineView {
	points := chartPoints(res)
	if len(points) < 2 {
		return nil
	}

	const w, h, pad = 600.0, 200.0, 10.0
	var max float64
	for _, p := range points {
		if p.value > max {
			max = p.value
		}
	}
	if max <= 0 {
		return nil
	}

	line := &lineView{First: points[0].label, Last: points[len(points)-1].label}
	step := (w - 2*pad) / float64(len(points)-1)
	for i, p := range points {
		x := pad + float64(i)*step
		y := h - pad - (p.value/max)*(h-2*pad)
		line.Points += fmt.Sprintf("%.1f,%.1f ", x, y)
	}
	return line
}
