package cache

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of an artifact rendered from inputs with
	// the given content hash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the output options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Title  string  `json:"title,omitempty"`
	Legend bool    `json:"legend"`
	Scale  float64 `json:"scale,omitempty"`
	RSVG   bool    `json:"rsvg,omitempty"` // PNG rasterized by rsvg-convert
}

// DefaultKeyer hashes inputs and options into "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

var _ Keyer = DefaultKeyer{}
