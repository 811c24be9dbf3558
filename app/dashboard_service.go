package app

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"gemdash/domain/chart"
	"gemdash/domain/diamond"
	"gemdash/internal"
	"gemdash/internal/analysis"
	"gemdash/internal/charts"
	"gemdash/internal/errors"
	"gemdash/internal/telemetry"
)

// DatasetProvider hands out the loaded diamonds table
type DatasetProvider interface {
	Get(ctx context.Context) (*diamond.Dataset, error)
}

// DashboardService runs one render pass: selection, filtered view, metrics
// and chart specs. It holds no per-request state.
type DashboardService struct {
	datasets   DatasetProvider
	sampleRows int
	logger     *internal.Logger
}

// Filter is one sidebar selector: every option plus what is selected.
type Filter struct {
	Field    diamond.Field `json:"field"`
	Label    string        `json:"label"`
	Options  []string      `json:"options"`
	Selected []string      `json:"selected"`
}

// IsSelected reports whether option v is selected.
func (f Filter) IsSelected(v string) bool {
	for _, s := range f.Selected {
		if s == v {
			return true
		}
	}
	return false
}

// Dashboard is the result of one render pass
type Dashboard struct {
	RenderID string            `json:"render_id"`
	Filters  []Filter          `json:"filters"`
	Summary  analysis.Summary  `json:"summary"`
	Metrics  []analysis.Metric `json:"-"`
	Charts   []chart.Spec      `json:"charts"`
	Dropped  []string          `json:"dropped,omitempty"`
}

// Chart returns the spec with the given name, if present.
func (d *Dashboard) Chart(name string) (chart.Spec, bool) {
	for _, spec := range d.Charts {
		if spec.Name == name {
			return spec, true
		}
	}
	return chart.Spec{}, false
}

// Sample is the head of the raw dataset.
type Sample struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// NewDashboardService creates the render pipeline over a dataset provider
func NewDashboardService(datasets DatasetProvider, sampleRows int, logger *internal.Logger) *DashboardService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DashboardService{
		datasets:   datasets,
		sampleRows: sampleRows,
		logger:     logger.With("Dashboard"),
	}
}

// Options returns the distinct values per field, in sidebar order.
func (s *DashboardService) Options(ctx context.Context) ([]Filter, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	options := diamond.Options(ds)
	filters := make([]Filter, 0, len(diamond.Fields))
	for _, f := range diamond.Fields {
		filters = append(filters, Filter{
			Field:    f,
			Label:    f.Label(),
			Options:  options[f],
			Selected: options[f],
		})
	}
	return filters, nil
}

// Compose filters the dataset by the selection encoded in query and builds
// the metrics and every chart.
func (s *DashboardService) Compose(ctx context.Context, query url.Values, surface string) (*Dashboard, error) {
	start := time.Now()
	renderID := newRenderID()

	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	options := diamond.Options(ds)
	sel, dropped := ParseSelection(query, options)
	if len(dropped) > 0 {
		s.logger.Debug("render %s: dropped unknown values %v", renderID, dropped)
	}

	view := diamond.Filter(ds, sel)
	summary := analysis.Summarize(view)

	dash := &Dashboard{
		RenderID: renderID,
		Summary:  summary,
		Metrics:  summary.Metrics(),
		Charts:   charts.BuildAll(view),
		Dropped:  dropped,
	}
	for _, f := range diamond.Fields {
		dash.Filters = append(dash.Filters, Filter{
			Field:    f,
			Label:    f.Label(),
			Options:  options[f],
			Selected: sel.Values(f),
		})
	}

	elapsed := time.Since(start)
	telemetry.ObserveRender(surface, view.Len(), elapsed)
	s.logger.Debug("render %s (%s): %d of %d rows in %v", renderID, surface, view.Len(), ds.Len(), elapsed)
	return dash, nil
}

// ChartSpec runs the pipeline for a single chart.
func (s *DashboardService) ChartSpec(ctx context.Context, query url.Values, name string) (chart.Spec, error) {
	build, ok := charts.Lookup(name)
	if !ok {
		return chart.Spec{}, errors.NotFound("chart " + name)
	}
	start := time.Now()

	ds, err := s.dataset(ctx)
	if err != nil {
		return chart.Spec{}, err
	}
	sel, _ := ParseSelection(query, diamond.Options(ds))
	view := diamond.Filter(ds, sel)
	spec := build(view)

	telemetry.ObserveRender(telemetry.SurfaceChart, view.Len(), time.Since(start))
	return spec, nil
}

// Sample returns the first rows of the dataset with every column.
func (s *DashboardService) Sample(ctx context.Context) (*Sample, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return &Sample{
		Columns: append([]string(nil), diamond.Columns...),
		Rows:    ds.Head(s.sampleRows),
		Total:   ds.Len(),
	}, nil
}

// RowCount reports the dataset size, for health checks.
func (s *DashboardService) RowCount(ctx context.Context) (int, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return 0, err
	}
	return ds.Len(), nil
}

func (s *DashboardService) dataset(ctx context.Context) (*diamond.Dataset, error) {
	ds, err := s.datasets.Get(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "dataset not available")
	}
	return ds, nil
}

// ParseSelection decodes repeatable cut, color and clarity query parameters.
// An absent key selects every option of its field. A key present with only
// empty values selects nothing. Values that are not options are dropped and
// returned as field=value.
func ParseSelection(query url.Values, options map[diamond.Field][]string) (diamond.Selection, []string) {
	sel := diamond.NewSelection(options)
	for _, f := range diamond.Fields {
		raw, present := query[string(f)]
		if !present {
			continue
		}
		values := make([]string, 0, len(raw))
		for _, v := range raw {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		sel = sel.With(f, values)
	}
	return sel.Restrict(options)
}

// EncodeSelection is the inverse of ParseSelection. Fields selecting every
// option are left out; empty fields are written as a single empty value.
func EncodeSelection(filters []Filter) url.Values {
	q := url.Values{}
	for _, f := range filters {
		if len(f.Selected) == len(f.Options) {
			continue
		}
		if len(f.Selected) == 0 {
			q[string(f.Field)] = []string{""}
			continue
		}
		q[string(f.Field)] = append([]string(nil), f.Selected...)
	}
	return q
}

func newRenderID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
