// Package pipeline runs the parameters → layout → render pipeline shared by
// the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Resolve: validate [params.Parameters] and normalise them to a
//     centimetre [floor.Request]
//  2. Layout: pack the room and place the furniture ([floor.Compute])
//  3. Render: encode the layout in each requested format ([sink.Render])
//
// Layouts and artifacts are cached by content key, so re-rendering the same
// room in another format skips the packing stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Params:  params.Default(),
//	    Formats: []string{"svg", "xlsx"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cafeplan/pkg/cache"
	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/core/render/sink"
	"github.com/matzehuels/cafeplan/pkg/errors"
	"github.com/matzehuels/cafeplan/pkg/params"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = string(sink.FormatSVG)

// MaxParallelRows caps the row worker count accepted from callers.
const MaxParallelRows = 64

// Options configures a pipeline run. It is the request body of the HTTP API.
type Options struct {
	// Layout options
	Params       params.Parameters `json:"params"`
	ReverseRows  []int             `json:"reverse_rows,omitempty"`
	ParallelRows int               `json:"parallel_rows,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	NoTitle  bool     `json:"no_title,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Margin   float64  `json:"margin,omitempty"`
	NoLabels bool     `json:"no_labels,omitempty"`
	NoAxes   bool     `json:"no_axes,omitempty"`
	CellSize float64  `json:"cell_size,omitempty"`
	Compact  bool     `json:"compact,omitempty"`

	// Runtime options (not serialized)
	Refresh bool        `json:"-"`
	Logger  *log.Logger `json:"-"`

	validated bool
}

// Result is the output of [Runner.Execute].
type Result struct {
	// Request is the normalised input of the layout stage.
	Request floor.Request

	// ParamsHash is the content hash of Request.
	ParamsHash string

	Layout    floor.Result
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds counts and stage timings.
type Stats struct {
	Slots         int
	Chairs        int
	DroppedChairs int
	Rows          int
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// ValidateAndSetDefaults validates the parameters and every option and
// fills in defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks the layout options.
func (o *Options) ValidateForLayout() error {
	if err := o.Params.Validate(); err != nil {
		return err
	}
	for _, r := range o.ReverseRows {
		if r < 0 {
			return errors.New(errors.ErrCodeValidation, "reverse row %d must not be negative", r)
		}
	}
	if o.ParallelRows < 0 || o.ParallelRows > MaxParallelRows {
		return errors.New(errors.ErrCodeValidation, "parallel rows must be between 0 and %d, got %d", MaxParallelRows, o.ParallelRows)
	}
	o.setLogger()
	return nil
}

// ValidateForRender checks formats and style options and applies defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	seen := make(map[string]bool, len(o.Formats))
	formats := o.Formats[:0:0]
	for _, f := range o.Formats {
		parsed, err := sink.ParseFormat(f)
		if err != nil {
			return err
		}
		if name := string(parsed); !seen[name] {
			seen[name] = true
			formats = append(formats, name)
		}
	}
	o.Formats = formats

	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "scale must be positive, got %v", o.Scale)
	}
	if o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "margin must not be negative, got %v", o.Margin)
	}
	if o.CellSize < 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "cell size must be positive, got %v", o.CellSize)
	}
	if o.Title == "" && !o.NoTitle {
		o.Title = sink.DefaultTitle
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	if o.CellSize == 0 {
		o.CellSize = sink.DefaultCellSize
	}
	o.setLogger()
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ComputeOptions returns the floor options for the layout stage.
func (o *Options) ComputeOptions() []floor.Option {
	var opts []floor.Option
	if len(o.ReverseRows) > 0 {
		opts = append(opts, floor.WithReversedRows(o.ReverseRows...))
	}
	if o.ParallelRows > 0 {
		opts = append(opts, floor.WithParallelPacking(o.ParallelRows))
	}
	return opts
}

// SinkOptions returns the render options shared by every format.
func (o *Options) SinkOptions() []sink.Option {
	title := o.Title
	if o.NoTitle {
		title = ""
	}
	opts := []sink.Option{
		sink.WithTitle(title),
		sink.WithCellSize(o.CellSize),
	}
	if o.Scale > 0 {
		opts = append(opts, sink.WithScale(o.Scale))
	}
	if o.Margin > 0 {
		opts = append(opts, sink.WithMargin(o.Margin))
	}
	if o.NoLabels {
		opts = append(opts, sink.WithoutLabels())
	}
	if o.NoAxes {
		opts = append(opts, sink.WithoutAxes())
	}
	if o.Compact {
		opts = append(opts, sink.WithCompact())
	}
	return opts
}

// LayoutKeyOpts returns the cache key options of the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{ReverseRows: o.ReverseRows}
}

// ArtifactKeyOpts returns the cache key options of one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	title := o.Title
	if o.NoTitle {
		title = ""
	}
	return cache.ArtifactKeyOpts{
		Format:   format,
		Title:    title,
		Scale:    o.Scale,
		Margin:   o.Margin,
		Labels:   !o.NoLabels,
		Axes:     !o.NoAxes,
		CellSize: o.CellSize,
		Compact:  o.Compact,
	}
}

func stageError(stage string, err error) error {
	return fmt.Errorf("%s: %w", stage, err)
}
