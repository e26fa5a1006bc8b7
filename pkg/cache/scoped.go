package cache

// ScopedKeyer prepends a fixed namespace to the keys of another Keyer, so
// that staging and production, or several teams, can point at one Redis or
// MongoDB backend without reading each other's meshes.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//	keyer.MeshKey(h, opts) // "staging:mesh:<sha256>"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns inner scoped by prefix. A nil inner selects the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) MeshKey(inputHash string, opts MeshKeyOpts) string {
	return k.prefix + k.inner.MeshKey(inputHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(meshHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(meshHash, opts)
}
