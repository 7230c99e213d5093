package cache

import "strings"

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies simulated node positions.
	LayoutKey(graphHash, configHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered output format.
	ArtifactKey(graphHash, configHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change simulated positions.
type LayoutKeyOpts struct {
	Mode      string  `json:"mode"`
	Ticks     int     `json:"ticks"`
	Transform float64 `json:"transform"`
	Seed      uint64  `json:"seed"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	LayoutKeyOpts
	Format    string  `json:"format"`
	Highlight string  `json:"highlight,omitempty"`
	Title     string  `json:"title,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(graphHash, configHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, configHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(graphHash, configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, graphHash, configHash, opts)
}

// KeyType returns the kind of a key ("layout", "artifact"), ignoring a
// scope prefix added by ScopedKeyer.
func KeyType(key string) string {
	for _, t := range []string{"artifact", "layout"} {
		if strings.Contains(key, t+":") {
			return t
		}
	}
	return "unknown"
}
