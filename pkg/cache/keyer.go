package cache

// Keyer generates cache keys.
type Keyer interface {
	// MeshKey identifies the mesh built from an input with the given hash.
	MeshKey(inputHash string, opts MeshKeyOpts) string

	// ArtifactKey identifies an output rendered from a mesh.
	ArtifactKey(meshHash string, opts ArtifactKeyOpts) string
}

// MeshKeyOpts holds the options that change the built mesh.
type MeshKeyOpts struct {
	Format    string `json:"format"`
	Ordering  string `json:"ordering"`
	LayerTags bool   `json:"layer_tags"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Title    string  `json:"title,omitempty"`
	Factor   float64 `json:"factor"`
	Annotate bool    `json:"annotate,omitempty"`
	Plane    string  `json:"plane,omitempty"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// MeshKey returns "mesh:v<KeyVersion>:<sha256>".
func (DefaultKeyer) MeshKey(inputHash string, opts MeshKeyOpts) string {
	return hashKey("mesh", inputHash, opts)
}

// ArtifactKey returns "artifact:v<KeyVersion>:<sha256>".
func (DefaultKeyer) ArtifactKey(meshHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", meshHash, opts)
}
