// Package chart renders stacked, x-aligned line panels into PNG images.
package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	ErrNoPanels = errors.New("chart has no panels")
	ErrNoPoints = errors.New("chart has no points")
)

// Panel is one line series drawn in its own row.
type Panel struct {
	YLabel string
	Values []float64
	// Annotations are drawn above each point. Defaults to the value with one decimal.
	Annotations []string
	Color       color.Color
	Marker      draw.GlyphDrawer
}

// StackedChart draws Panels top to bottom sharing one categorical x axis.
// Only the bottom panel shows the x tick labels.
type StackedChart struct {
	Title        string
	XLabel       string
	XTicks       []string
	Panels       []Panel
	Width        vg.Length
	Height       vg.Length
	DPI          int
	TickRotation float64
}

// RenderPNG draws the chart and returns the encoded PNG bytes.
func (c StackedChart) RenderPNG() ([]byte, error) {
	if len(c.Panels) == 0 {
		return nil, ErrNoPanels
	}
	if len(c.XTicks) == 0 {
		return nil, ErrNoPoints
	}
	for _, panel := range c.Panels {
		if len(panel.Values) != len(c.XTicks) {
			return nil, fmt.Errorf("panel %q has %d values for %d ticks", panel.YLabel, len(panel.Values), len(c.XTicks))
		}
		if panel.Annotations != nil && len(panel.Annotations) != len(panel.Values) {
			return nil, fmt.Errorf("panel %q has %d annotations for %d values", panel.YLabel, len(panel.Annotations), len(panel.Values))
		}
	}

	width, height, dpi := c.Width, c.Height, c.DPI
	if width == 0 {
		width = 14 * vg.Inch
	}
	if height == 0 {
		height = 18 * vg.Inch
	}
	if dpi == 0 {
		dpi = 100
	}

	plots := make([][]*plot.Plot, len(c.Panels))
	for i, panel := range c.Panels {
		p, err := c.buildPanel(panel, i == 0, i == len(c.Panels)-1)
		if err != nil {
			return nil, err
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(20),
		PadY:      vg.Points(12),
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderBase64 draws the chart and returns the PNG as standard base64 text.
func (c StackedChart) RenderBase64() (string, error) {
	png, err := c.RenderPNG()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

func (c StackedChart) buildPanel(panel Panel, first, last bool) (*plot.Plot, error) {
	p := plot.New()
	if first {
		p.Title.Text = c.Title
	}
	p.Y.Label.Text = panel.YLabel

	xys := make(plotter.XYs, len(panel.Values))
	for i, v := range panel.Values {
		xys[i].X = float64(i)
		xys[i].Y = v
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("panel %q: %w", panel.YLabel, err)
	}
	if panel.Color != nil {
		line.Color = panel.Color
		points.Color = panel.Color
	}
	if panel.Marker != nil {
		points.Shape = panel.Marker
	}

	annotations := panel.Annotations
	if annotations == nil {
		annotations = make([]string, len(panel.Values))
		for i, v := range panel.Values {
			annotations[i] = fmt.Sprintf("%.1f", v)
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: annotations})
	if err != nil {
		return nil, fmt.Errorf("panel %q: %w", panel.YLabel, err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].Font.Size = vg.Points(8)
	}
	labels.Offset = vg.Point{Y: vg.Points(5)}

	p.Add(plotter.NewGrid(), line, points, labels)

	ticks := make([]plot.Tick, len(c.XTicks))
	for i, label := range c.XTicks {
		ticks[i] = plot.Tick{Value: float64(i)}
		if last {
			ticks[i].Label = label
		}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = -0.5
	p.X.Max = float64(len(c.XTicks)) - 0.5

	if last {
		p.X.Label.Text = c.XLabel
		p.X.Tick.Label.Rotation = c.TickRotation
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
		p.X.Tick.Label.Font.Size = vg.Points(8)
	}

	p.Y.Min, p.Y.Max = paddedRange(panel.Values)
	return p, nil
}

// paddedRange leaves head room above the points for their annotations.
func paddedRange(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(hi), 1)
	}
	return lo - span*0.1, hi + span*0.2
}
