package chart

import (
	"bytes"
	"fmt"
	"sync"

	gochart "github.com/wcharczuk/go-chart/v2"

	"wsn_dashboard/internal/models"
)

// Fixed drawing surface. The pixel range is the same for every render.
const (
	CanvasWidth  = 1640
	CanvasHeight = 720

	marginTop    = 30
	marginLeft   = 30
	marginBottom = 30
	marginRight  = 30

	strokeWidth = 1.0
)

// Format is the output encoding of a rendered chart.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat defaults to SVG.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("chart: unsupported format %q", s)
	}
}

// ContentType is the HTTP media type of the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatPNG {
		return gochart.PNG
	}
	return gochart.SVG
}

// Fields are the two bound inputs of one axis. Render reads them as user
// bounds and overwrites them with the natural range of the data.
type Fields struct {
	Lo Bound
	Hi Bound
}

// Rendered is one complete drawing.
type Rendered struct {
	Format Format
	Body   []byte
	X      Domain
	Y      Domain
}

// Renderer owns the drawing surface. Every Render is a full redraw that
// replaces the previous output.
type Renderer struct {
	mu     sync.Mutex
	format Format
	last   *Rendered
}

func NewRenderer(format Format) *Renderer {
	if format == "" {
		format = FormatSVG
	}
	return &Renderer{format: format}
}

// Render draws s as a single polyline in the given stroke color.
// It fails with ErrEmptySeries when s has no points.
func (r *Renderer) Render(s models.Series, stroke string, x, y *Fields) (*Rendered, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = nil

	if x == nil {
		x = &Fields{}
	}
	if y == nil {
		y = &Fields{}
	}

	color, err := ParseColor(stroke)
	if err != nil {
		return nil, err
	}

	xd, err := Resolve(s, AxisX, x.Lo, x.Hi)
	if err != nil {
		return nil, err
	}
	yd, err := Resolve(s, AxisY, y.Lo, y.Hi)
	if err != nil {
		return nil, err
	}

	x.Lo, x.Hi = At(xd.NaturalLo), At(xd.NaturalHi)
	y.Lo, y.Hi = At(yd.NaturalLo), At(yd.NaturalHi)

	xs, ys := s.X, s.Y
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0]}
		ys = []float64{ys[0], ys[0]}
	}

	graph := gochart.Chart{
		Width:  CanvasWidth,
		Height: CanvasHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: marginTop, Left: marginLeft, Right: marginRight, Bottom: marginBottom},
		},
		XAxis: gochart.XAxis{Range: plotRange(xd)},
		// the primary y axis draws on the right; keep its range for validation but hide it
		YAxis:          gochart.YAxis{Range: plotRange(yd), Style: gochart.Style{Hidden: true}},
		YAxisSecondary: gochart.YAxis{Range: plotRange(yd)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				YAxis:   gochart.YAxisSecondary, // left ruler
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: color,
					StrokeWidth: strokeWidth,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(r.format.provider(), &buf); err != nil {
		return nil, fmt.Errorf("chart: render %s: %w", r.format, err)
	}

	r.last = &Rendered{Format: r.format, Body: buf.Bytes(), X: xd, Y: yd}
	return r.last, nil
}

// plotRange maps a domain to a chart range. A zero-height domain is widened
// by one unit so the linear mapping stays defined.
func plotRange(d Domain) *gochart.ContinuousRange {
	lo, hi := d.Lo, d.Hi
	if hi <= lo {
		hi = lo + 1
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}
