package charts

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"renewcalc/internal/logger"
)

// Format is an output format a ChartSpec can be rendered to
type Format string

const (
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
)

var (
	// ErrNotInitialized is returned when rendering before Init has run
	ErrNotInitialized = errors.New("chart renderers not initialized")
	// ErrUnknownFormat is returned for a format with no registered renderer
	ErrUnknownFormat = errors.New("unknown chart format")
)

// Renderer writes a ChartSpec in one output format
type Renderer interface {
	Render(spec ChartSpec, w io.Writer) error
	ContentType() string
}

var (
	initOnce  sync.Once
	renderers map[Format]Renderer
)

// Init registers the built-in renderers. The hosting application calls it once
// before the first render; later calls are no-ops.
func Init() {
	initOnce.Do(func() {
		renderers = map[Format]Renderer{
			FormatHTML: echartsRenderer{},
			FormatPNG:  pngRenderer{},
		}
		logger.GetGlobalLogger().WithComponent("charts").Debug("chart renderers registered", logger.Fields{
			"formats": len(renderers),
		})
	})
}

// Formats lists the registered formats in sorted order
func Formats() []Format {
	out := make([]Format, 0, len(renderers))
	for f := range renderers {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RendererFor returns the renderer registered for format
func RendererFor(format Format) (Renderer, error) {
	if renderers == nil {
		return nil, ErrNotInitialized
	}
	r, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return r, nil
}

// Render writes spec to w in the given format
func Render(spec ChartSpec, format Format, w io.Writer) error {
	r, err := RendererFor(format)
	if err != nil {
		return err
	}
	if err := r.Render(spec, w); err != nil {
		return fmt.Errorf("failed to render %s chart %q: %w", format, spec.Options.Title, err)
	}
	return nil
}
