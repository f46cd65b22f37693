package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"wsn_dashboard/internal/acquisition"
	"wsn_dashboard/internal/chart"
	"wsn_dashboard/internal/logger"
	"wsn_dashboard/internal/models"
	"wsn_dashboard/internal/repository"
)

// Graph data sources.
const (
	SourceReadings = "readings" // values stored from the monitoring table
	SourceTime     = "time"     // backend time series of the last recording
	SourceFreq     = "freq"     // backend spectrum of the last recording
)

const defaultGraphPoints = 600

var (
	ErrUnknownSource = errors.New("unknown graph source")
	ErrInvalidRow    = errors.New("row must be between 1 and 11")
	ErrInvalidOption = errors.New("graph option must be one of: X only, Y only, Z only, sum")
)

// GraphSource is the part of the backend that serves recorded series.
type GraphSource interface {
	GraphTime(ctx context.Context, option string) (models.GraphData, error)
	GraphFreq(ctx context.Context) (models.GraphData, error)
}

// GraphRecorder counts renders.
type GraphRecorder interface {
	GraphRendered(source string, err error)
}

type GraphRequest struct {
	Source string
	Mode   string // SourceReadings only
	Row    int    // SourceReadings only, 1..11
	Option string // SourceTime only
	Color  string
	Format chart.Format
}

type GraphResult struct {
	Rendered *chart.Rendered
	Settings models.DashboardSettings
	Points   int
	Label    string // backend metadata: option, time stamp and ODR when available
}

// GraphService feeds the chart renderer and keeps the bound fields in sync.
type GraphService struct {
	// drawMu serializes clear, draw and write-back so the bound fields a
	// render reads and writes belong to its own series.
	drawMu sync.Mutex

	settings  *SettingsService
	readings  repository.ReadingRepo
	backend   GraphSource
	renderers map[chart.Format]*chart.Renderer
	maxPoints int
	metrics   GraphRecorder
	log       *logger.Logger
}

func NewGraphService(settings *SettingsService, readings repository.ReadingRepo, backend GraphSource, maxPoints int, m GraphRecorder, log *logger.Logger) *GraphService {
	if maxPoints <= 0 {
		maxPoints = defaultGraphPoints
	}
	if m == nil {
		m = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &GraphService{
		settings: settings,
		readings: readings,
		backend:  backend,
		renderers: map[chart.Format]*chart.Renderer{
			chart.FormatSVG: chart.NewRenderer(chart.FormatSVG),
			chart.FormatPNG: chart.NewRenderer(chart.FormatPNG),
		},
		maxPoints: maxPoints,
		metrics:   m,
		log:       log,
	}
}

// Render draws the requested series. In automatic mode the bound fields are
// emptied first; after a successful draw they hold the natural data range.
func (g *GraphService) Render(ctx context.Context, req GraphRequest) (GraphResult, error) {
	res, err := g.render(ctx, req)
	g.metrics.GraphRendered(req.Source, err)
	if err != nil {
		g.log.Warnw("graph_render_failed", "source", req.Source, "err", err)
	}
	return res, err
}

func (g *GraphService) render(ctx context.Context, req GraphRequest) (GraphResult, error) {
	renderer, ok := g.renderers[req.Format]
	if !ok {
		renderer = g.renderers[chart.FormatSVG]
	}

	series, label, err := g.series(ctx, req)
	if err != nil {
		return GraphResult{}, err
	}

	g.drawMu.Lock()
	defer g.drawMu.Unlock()

	if !g.settings.Current().ScaleManual {
		if _, err := g.settings.Clear(ctx); err != nil {
			return GraphResult{}, err
		}
	}
	cur := g.settings.Current()
	x := chart.Fields{Lo: chart.ParseBound(cur.XMin), Hi: chart.ParseBound(cur.XMax)}
	y := chart.Fields{Lo: chart.ParseBound(cur.YMin), Hi: chart.ParseBound(cur.YMax)}

	rendered, err := renderer.Render(series, req.Color, &x, &y)
	if err != nil {
		return GraphResult{}, err
	}

	saved, err := g.settings.SaveBounds(ctx, ScaleBounds{
		XMin: x.Lo.String(), XMax: x.Hi.String(),
		YMin: y.Lo.String(), YMax: y.Hi.String(),
	})
	if err != nil {
		return GraphResult{}, err
	}
	return GraphResult{Rendered: rendered, Settings: saved, Points: len(series.X), Label: label}, nil
}

func (g *GraphService) series(ctx context.Context, req GraphRequest) (models.Series, string, error) {
	switch req.Source {
	case "", SourceReadings:
		s, err := g.readingSeries(ctx, req.Mode, req.Row)
		return s, "", err
	case SourceTime:
		opt := req.Option
		if opt == "" {
			opt = acquisition.GraphOptionX
		}
		if !validOption(opt) {
			return models.Series{}, "", ErrInvalidOption
		}
		data, err := g.backend.GraphTime(ctx, opt)
		if err != nil {
			return models.Series{}, "", err
		}
		return data.Series(), graphLabel(data), nil
	case SourceFreq:
		data, err := g.backend.GraphFreq(ctx)
		if err != nil {
			return models.Series{}, "", err
		}
		return data.Series(), graphLabel(data), nil
	default:
		return models.Series{}, "", fmt.Errorf("%w: %q", ErrUnknownSource, req.Source)
	}
}

// readingSeries plots one table row over time: x is seconds since the first
// stored reading, rows whose text is not numeric are skipped.
func (g *GraphService) readingSeries(ctx context.Context, mode string, row int) (models.Series, error) {
	if row < 1 || row >= models.RowCount {
		return models.Series{}, ErrInvalidRow
	}
	readings, err := g.readings.Recent(ctx, mode, g.maxPoints)
	if err != nil {
		return models.Series{}, fmt.Errorf("load readings: %w", err)
	}

	var s models.Series
	for _, rd := range readings {
		if row-1 >= len(rd.Values) {
			continue
		}
		v, ok := rd.Values[row-1].Float()
		if !ok {
			continue
		}
		s.Append(rd.ReceivedAt.Sub(readings[0].ReceivedAt).Seconds(), v)
	}
	return s, nil
}

func validOption(opt string) bool {
	switch opt {
	case acquisition.GraphOptionX, acquisition.GraphOptionY, acquisition.GraphOptionZ, acquisition.GraphOptionSum:
		return true
	}
	return false
}

func graphLabel(d models.GraphData) string {
	label := d.Label
	if d.Time != "" {
		label += " @ " + d.Time
	}
	if d.Freq != "" {
		label += " (ODR " + d.Freq + ")"
	}
	return label
}
