// Package charts renders the four analysis panels and assembles the
// composite report image. Every renderer is a total function: nil
// series input (or an internal go-chart failure) yields a placeholder
// panel, never an error, so one missing section can never block the
// other panels.
package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/build-your-own-x-with-ai/AIStreamEye/src/logx"
	"github.com/build-your-own-x-with-ai/AIStreamEye/src/series"
)

// Fixed panel geometry; the composite is two panels wide and two high.
const (
	PanelWidth  = 1200
	PanelHeight = 750
	renderDPI   = 150
	titleBand   = 64
)

// Fixed category colors (frame types share one mapping across panels).
var (
	colorIFrame  = drawing.Color{R: 0xff, G: 0x6b, B: 0x6b, A: 255}
	colorPFrame  = drawing.Color{R: 0x4e, G: 0xcd, B: 0xc4, A: 255}
	colorBFrame  = drawing.Color{R: 0x45, G: 0xb7, B: 0xd1, A: 255}
	colorUnknown = drawing.Color{R: 0x99, G: 0x99, B: 0x99, A: 255}

	colorGOPNormal = drawing.Color{R: 0x95, G: 0xe1, B: 0xd3, A: 255}
	colorGOPEdge   = drawing.Color{R: 0x38, G: 0xad, B: 0xa9, A: 255}
	// long/short buckets reuse the I/P hues so the report keeps one palette
	colorGOPLong  = colorIFrame
	colorGOPShort = colorPFrame

	colorAverage = drawing.Color{R: 0xd6, G: 0x2c, B: 0x2c, A: 255}
	colorLine    = drawing.Color{R: 0x2c, G: 0x5c, B: 0xd6, A: 255}
)

func frameTypeColor(t series.FrameType) drawing.Color {
	switch t {
	case series.TypeI:
		return colorIFrame
	case series.TypeP:
		return colorPFrame
	case series.TypeB:
		return colorBFrame
	}
	return colorUnknown
}

func gopBucketColor(b series.GOPBucket) drawing.Color {
	switch b {
	case series.GOPLong:
		return colorGOPLong
	case series.GOPShort:
		return colorGOPShort
	}
	return colorGOPNormal
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    5,
		DotColor:    col,
	}
}

// RenderBitrate draws the bitrate-over-time line panel with a dashed
// average overlay. A nil series yields the placeholder panel.
func RenderBitrate(s *series.BitrateSeries) image.Image {
	if s == nil || len(s.Timestamps) == 0 {
		return Placeholder("No bitrate data available")
	}
	xs := s.Timestamps
	ys := s.Mbps
	// go-chart needs at least two X values; pad single-sample series.
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0] + 1}
		ys = []float64{ys[0], ys[0]}
	}
	minX, maxX := xs[0], xs[0]
	maxY := 0.0
	for i := range xs {
		if xs[i] < minX {
			minX = xs[i]
		}
		if xs[i] > maxX {
			maxX = xs[i]
		}
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}
	if s.AverageMbps > maxY {
		maxY = s.AverageMbps
	}
	if maxX <= minX {
		maxX = minX + 1
	}
	_, yMax := niceAxisBounds(0, maxY)
	ch := chart.Chart{
		Title:      "Video Bitrate Over Time",
		Width:      PanelWidth,
		Height:     PanelHeight,
		DPI:        renderDPI,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      chart.XAxis{Name: "Time (seconds)", Range: &chart.ContinuousRange{Min: minX, Max: maxX}},
		YAxis:      chart.YAxis{Name: "Bitrate (Mbps)", Range: &chart.ContinuousRange{Min: 0, Max: yMax}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Instantaneous Bitrate",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: colorLine, StrokeWidth: 1.5},
			},
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("Average: %.2f Mbps", s.AverageMbps),
				XValues: []float64{minX, maxX},
				YValues: []float64{s.AverageMbps, s.AverageMbps},
				Style:   chart.Style{StrokeColor: colorAverage, StrokeWidth: 1, StrokeDashArray: []float64{5, 5}},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return renderOrPlaceholder(&ch, "No bitrate data available")
}

// RenderFrameTypes draws the frame-type distribution pie. A nil count
// set, or one whose total is zero (a zero-sum pie is undefined), yields
// the placeholder panel.
func RenderFrameTypes(c *series.FrameTypeCounts) image.Image {
	if c == nil || c.Total() <= 0 {
		return Placeholder("No frame statistics available")
	}
	total := float64(c.Total())
	categories := []struct {
		name  string
		count int
		col   drawing.Color
	}{
		{"I-Frames", c.I, colorIFrame},
		{"P-Frames", c.P, colorPFrame},
		{"B-Frames", c.B, colorBFrame},
	}
	nonZero := 0
	for _, cat := range categories {
		if cat.count > 0 {
			nonZero++
		}
	}
	var values []chart.Value
	for _, cat := range categories {
		label := fmt.Sprintf("%s %.1f%%", cat.name, float64(cat.count)*100/total)
		style := chart.Style{FillColor: cat.col, FontColor: drawing.ColorWhite}
		if nonZero == 1 && cat.count > 0 {
			// go-chart drops zero wedges and leaves a lone full-circle
			// wedge unfilled; split the dominant category into two
			// equal same-color wedges so the disc is actually painted.
			half := float64(cat.count) / 2
			values = append(values,
				chart.Value{Value: half, Label: label, Style: style},
				chart.Value{Value: half, Label: "", Style: style},
			)
			continue
		}
		values = append(values, chart.Value{Value: float64(cat.count), Label: label, Style: style})
	}
	pie := chart.PieChart{
		Title:  "Frame Type Distribution",
		Width:  PanelWidth,
		Height: PanelHeight,
		DPI:    renderDPI,
		Values: values,
	}
	return renderOrPlaceholder(&pie, "No frame statistics available")
}

// RenderGOPs draws one bar per GOP, colored by its length bucket
// relative to the mean, with a fixed three-bucket legend. A nil series
// yields the placeholder panel.
func RenderGOPs(s *series.GOPSeries) image.Image {
	if s == nil || len(s.FrameCounts) == 0 {
		return Placeholder("No GOP data available")
	}
	bars := make([]chart.Value, len(s.FrameCounts))
	maxCount := 0
	for i, n := range s.FrameCounts {
		col := gopBucketColor(series.ClassifyGOP(n, s.MeanLength))
		bars[i] = chart.Value{
			Value: float64(n),
			Label: strconv.Itoa(s.Indices[i]),
			Style: chart.Style{FillColor: col, StrokeColor: colorGOPEdge, StrokeWidth: 1},
		}
		if n > maxCount {
			maxCount = n
		}
	}
	_, yMax := niceAxisBounds(0, float64(maxCount))
	barWidth := (PanelWidth - 200) / len(bars)
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 4 {
		barWidth = 4
	}
	bc := chart.BarChart{
		Title:      "GOP Structure",
		Width:      PanelWidth,
		Height:     PanelHeight,
		DPI:        renderDPI,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 24}},
		BarWidth:   barWidth,
		YAxis:      chart.YAxis{Name: "Frame Count", Range: &chart.ContinuousRange{Min: 0, Max: yMax}},
		Bars:       bars,
	}
	img := renderOrPlaceholder(&bc, "No GOP data available")
	// go-chart only attaches legends to chart.Chart, so the bucket
	// legend is drawn onto the panel. All three buckets are always
	// listed, whether or not any bar falls into them.
	rgba := drawLegend(img, []legendEntry{
		{"Long GOP", colorGOPLong},
		{"Normal GOP", colorGOPNormal},
		{"Short GOP", colorGOPShort},
	})
	// BarChart has no x-axis name either; the label lands in the bottom
	// padding reserved above.
	drawCenteredText(rgba, "GOP Index", PanelWidth/2, PanelHeight-16, color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	return rgba
}

// RenderFrameSizes draws the per-frame size scatter, colored by frame
// type. Unknown types get the neutral color and stay out of the
// legend. A nil series yields the placeholder panel.
func RenderFrameSizes(s *series.FrameSizeSeries) image.Image {
	if s == nil || len(s.Timestamps) == 0 {
		return Placeholder("No frame data available")
	}
	groups := map[series.FrameType]*struct{ xs, ys []float64 }{}
	minX, maxX := s.Timestamps[0], s.Timestamps[0]
	maxY := 0.0
	for i := range s.Timestamps {
		g := groups[s.Types[i]]
		if g == nil {
			g = &struct{ xs, ys []float64 }{}
			groups[s.Types[i]] = g
		}
		g.xs = append(g.xs, s.Timestamps[i])
		g.ys = append(g.ys, s.SizesKB[i])
		if s.Timestamps[i] < minX {
			minX = s.Timestamps[i]
		}
		if s.Timestamps[i] > maxX {
			maxX = s.Timestamps[i]
		}
		if s.SizesKB[i] > maxY {
			maxY = s.SizesKB[i]
		}
	}
	if maxX <= minX {
		maxX = minX + 1
	}
	var sers []chart.Series
	for _, t := range []series.FrameType{series.TypeI, series.TypeP, series.TypeB, series.TypeUnknown} {
		g := groups[t]
		if g == nil {
			continue
		}
		xs, ys := g.xs, g.ys
		if len(xs) == 1 {
			// pad to satisfy go-chart's two-point minimum
			xs = []float64{xs[0], xs[0] + 1}
			ys = []float64{ys[0], ys[0]}
		}
		sers = append(sers, chart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(frameTypeColor(t)),
		})
	}
	_, yMax := niceAxisBounds(0, maxY)
	ch := chart.Chart{
		Title:      "Frame Sizes Over Time",
		Width:      PanelWidth,
		Height:     PanelHeight,
		DPI:        renderDPI,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      chart.XAxis{Name: "Time (seconds)", Range: &chart.ContinuousRange{Min: minX, Max: maxX}},
		YAxis:      chart.YAxis{Name: "Frame Size (KB)", Range: &chart.ContinuousRange{Min: 0, Max: yMax}},
		Series:     sers,
	}
	img := renderOrPlaceholder(&ch, "No frame data available")
	// Legend lists the three named categories only; UNKNOWN points are
	// colored neutrally but never named.
	return drawLegend(img, []legendEntry{
		{"I-Frame", colorIFrame},
		{"P-Frame", colorPFrame},
		{"B-Frame", colorBFrame},
	})
}

// Composite arranges the four panels as a 2x2 grid (bitrate, frame
// types / GOPs, frame sizes) under a centered report title.
func Composite(bitrate, frameTypes, gops, frameSizes image.Image) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, 2*PanelWidth, titleBand+2*PanelHeight))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	drawCenteredText(out, "Video Stream Analysis Results", out.Bounds().Dx()/2, titleBand/2, color.Black)
	panels := []struct {
		img  image.Image
		x, y int
	}{
		{bitrate, 0, titleBand},
		{frameTypes, PanelWidth, titleBand},
		{gops, 0, titleBand + PanelHeight},
		{frameSizes, PanelWidth, titleBand + PanelHeight},
	}
	for _, p := range panels {
		if p.img == nil {
			continue
		}
		r := image.Rect(p.x, p.y, p.x+PanelWidth, p.y+PanelHeight)
		draw.Draw(out, r, p.img, p.img.Bounds().Min, draw.Src)
	}
	return out
}

// Placeholder returns a blank panel with a centered message, used
// whenever a chart has nothing to plot.
func Placeholder(msg string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, PanelWidth, PanelHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	drawCenteredText(img, msg, PanelWidth/2, PanelHeight/2, color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 255})
	return img
}

// pngRenderable is satisfied by chart.Chart, chart.PieChart and
// chart.BarChart; go-chart exports no shared interface for them.
type pngRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// renderOrPlaceholder renders a go-chart provider to PNG and decodes it
// back; any failure degrades to the placeholder panel so renderers stay
// total.
func renderOrPlaceholder(p pngRenderable, msg string) image.Image {
	var buf bytes.Buffer
	if err := p.Render(chart.PNG, &buf); err != nil {
		logx.Warnf("chart render failed: %v; using placeholder", err)
		return Placeholder(msg)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		logx.Warnf("chart decode failed: %v; using placeholder", err)
		return Placeholder(msg)
	}
	return img
}

type legendEntry struct {
	label string
	col   drawing.Color
}

// drawLegend paints a swatch+label legend box in the panel's top-right
// corner, on top of the rendered chart.
func drawLegend(img image.Image, entries []legendEntry) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	face := basicfont.Face7x13
	lineH := face.Metrics().Height.Ceil() + 6
	const swatch = 12
	const pad = 8
	widest := 0
	dr := &font.Drawer{Face: face}
	for _, e := range entries {
		if w := dr.MeasureString(e.label).Ceil(); w > widest {
			widest = w
		}
	}
	boxW := pad + swatch + 6 + widest + pad
	boxH := pad + lineH*len(entries) + pad/2
	x0 := b.Max.X - boxW - 24
	y0 := b.Min.Y + 40
	// light box with a thin border
	draw.Draw(rgba, image.Rect(x0, y0, x0+boxW, y0+boxH), image.NewUniform(color.RGBA{R: 250, G: 250, B: 250, A: 235}), image.Point{}, draw.Over)
	border := image.NewUniform(color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 255})
	draw.Draw(rgba, image.Rect(x0, y0, x0+boxW, y0+1), border, image.Point{}, draw.Src)
	draw.Draw(rgba, image.Rect(x0, y0+boxH-1, x0+boxW, y0+boxH), border, image.Point{}, draw.Src)
	draw.Draw(rgba, image.Rect(x0, y0, x0+1, y0+boxH), border, image.Point{}, draw.Src)
	draw.Draw(rgba, image.Rect(x0+boxW-1, y0, x0+boxW, y0+boxH), border, image.Point{}, draw.Src)
	for i, e := range entries {
		ty := y0 + pad + i*lineH
		sw := image.Rect(x0+pad, ty, x0+pad+swatch, ty+swatch)
		draw.Draw(rgba, sw, image.NewUniform(color.RGBA{R: e.col.R, G: e.col.G, B: e.col.B, A: e.col.A}), image.Point{}, draw.Src)
		d := &font.Drawer{
			Dst:  rgba,
			Src:  image.NewUniform(color.RGBA{A: 255}),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(x0 + pad + swatch + 6), Y: fixed.I(ty + swatch - 1)},
		}
		d.DrawString(e.label)
	}
	return rgba
}

// drawCenteredText draws one line of text centered on (cx, cy).
func drawCenteredText(dst *image.RGBA, text string, cx, cy int, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	w := d.MeasureString(text).Ceil()
	d.Dot = fixed.Point26_6{
		X: fixed.I(cx - w/2),
		Y: fixed.I(cy + face.Metrics().Ascent.Ceil()/2),
	}
	d.DrawString(text)
}

// niceAxisBounds widens [min,max] to rounded bounds so constant-valued
// series still get a usable axis range.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	if pad <= 0 {
		pad = 1
	}
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	if min >= 0 && a < 0 {
		a = 0
	}
	return a, b
}
