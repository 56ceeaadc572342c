package charts

import (
	"errors"
	"fmt"
)

// ChartRequest is the wire form of a chart build: labels plus either a single
// series or a list of described series
type ChartRequest struct {
	Labels      []string   `json:"labels" yaml:"labels"`
	DefaultType RenderType `json:"defaultType,omitempty" yaml:"defaultType,omitempty"`
	Display     Display    `json:"display" yaml:"display"`
	Single      *Single    `json:"single,omitempty" yaml:"single,omitempty"`
	Series      Multiple   `json:"series,omitempty" yaml:"series,omitempty"`
}

// Input returns the series input the request carries
func (r ChartRequest) Input() (SeriesInput, error) {
	switch {
	case r.Single != nil && len(r.Series) > 0:
		return nil, errors.New("set either single or series, not both")
	case r.Single != nil:
		return *r.Single, nil
	case len(r.Series) > 0:
		return r.Series, nil
	default:
		return nil, errors.New("a single series or a series list is required")
	}
}

// Build validates the render types and builds the chart
func (r ChartRequest) Build() (ChartSpec, error) {
	if _, err := ParseRenderType(string(r.DefaultType)); err != nil {
		return ChartSpec{}, err
	}
	for i, s := range r.Series {
		if _, err := ParseRenderType(string(s.Type)); err != nil {
			return ChartSpec{}, fmt.Errorf("series %d: %w", i, err)
		}
	}

	input, err := r.Input()
	if err != nil {
		return ChartSpec{}, err
	}
	return BuildChartSpec(r.Labels, input, r.DefaultType, r.Display), nil
}
