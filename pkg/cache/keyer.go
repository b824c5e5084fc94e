package cache

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey is the key of a packed layout.
	LayoutKey(paramsHash string, opts LayoutKeyOpts) string

	// ArtifactKey is the key of a rendered artifact of a layout.
	ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the layout options that change the packed result.
// The row worker count is left out since it never changes the output.
type LayoutKeyOpts struct {
	ReverseRows []int `json:"reverse_rows,omitempty"`
}

// ArtifactKeyOpts holds the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Title    string  `json:"title,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Margin   float64 `json:"margin,omitempty"`
	Labels   bool    `json:"labels"`
	Axes     bool    `json:"axes"`
	CellSize float64 `json:"cell_size,omitempty"`
	Compact  bool    `json:"compact,omitempty"`
}

// DefaultKeyer hashes the key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(paramsHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, paramsHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, layoutKey, opts)
}

var _ Keyer = DefaultKeyer{}
