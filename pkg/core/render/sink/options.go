package sink

// Option configures every sink. Options that do not apply to a format are
// ignored by it.
type Option func(*config)

type config struct {
	title  string
	scale  float64
	margin float64
	labels bool
	axes   bool
	cell   float64
	tick   float64
	indent bool
}

// Defaults.
const (
	DefaultTitle    = "Net Cafe Layout"
	DefaultScale    = 1.0
	DefaultMargin   = 60.0
	DefaultCellSize = 25.0
	DefaultTick     = 100.0
)

func newConfig(opts ...Option) config {
	c := config{
		title:  DefaultTitle,
		scale:  DefaultScale,
		margin: DefaultMargin,
		labels: true,
		axes:   true,
		cell:   DefaultCellSize,
		tick:   DefaultTick,
		indent: true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.scale <= 0 {
		c.scale = DefaultScale
	}
	if c.margin < 0 {
		c.margin = 0
	}
	if c.cell <= 0 {
		c.cell = DefaultCellSize
	}
	if c.tick <= 0 {
		c.tick = DefaultTick
	}
	return c
}

// WithTitle sets the heading drawn above the plan. An empty title hides it.
func WithTitle(t string) Option { return func(c *config) { c.title = t } }

// WithScale sets pixels per centimetre for SVG, PNG and PDF.
func WithScale(s float64) Option { return func(c *config) { c.scale = s } }

// WithMargin sets the blank border around the room, in pixels.
func WithMargin(m float64) Option { return func(c *config) { c.margin = m } }

// WithoutLabels hides the furniture labels.
func WithoutLabels() Option { return func(c *config) { c.labels = false } }

// WithoutAxes hides the axis ticks and captions.
func WithoutAxes() Option { return func(c *config) { c.axes = false } }

// WithCellSize sets how many centimetres one character covers in [RenderText].
func WithCellSize(cm float64) Option { return func(c *config) { c.cell = cm } }

// WithTick sets the spacing of axis ticks in centimetres.
func WithTick(cm float64) Option { return func(c *config) { c.tick = cm } }

// WithCompact drops indentation from JSON output.
func WithCompact() Option { return func(c *config) { c.indent = false } }
