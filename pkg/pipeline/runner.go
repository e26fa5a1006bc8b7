package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trussmesh/pkg/cache"
	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/geom"
	trussio "github.com/matzehuels/trussmesh/pkg/io"
	"github.com/matzehuels/trussmesh/pkg/mesh"
	"github.com/matzehuels/trussmesh/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the caching logic lives in one place.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	segments, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.SegmentCount = len(segments)
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Debug("loaded segments",
		"segments", len(segments),
		"cached", loadHit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	m, err := r.Build(ctx, segments, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Mesh = m
	result.MeshHash = MeshHash(m)
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.PointCount = m.NumPoints()
	result.Stats.EdgeCount = m.NumEdges()
	result.Stats.TagCount = len(m.Tags())

	r.Logger.Info("built mesh",
		"points", m.NumPoints(),
		"edges", m.NumEdges(),
		"tags", len(m.Tags()),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads the input segments and reports whether they came
// from the cache. Segments given directly in opts are returned as is.
//
// File inputs are cached by content hash, so an edited file is re-read even
// when its path is unchanged.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]geom.Segment, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	if opts.Input == "" {
		return opts.Segments, false, nil
	}

	format, err := trussio.FormatOf(opts.Input)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", opts.Input)
		}
		return nil, false, errors.IOFailure(err, "read %s", opts.Input)
	}
	cacheKey := r.Keyer.MeshKey(cache.Hash(data), opts.MeshKeyOpts(format))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if segments, err := trussio.ReadSegmentsJSON(bytes.NewReader(cached)); err == nil {
				observability.Cache().OnCacheHit(ctx, "mesh")
				return segments, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "mesh")
	}

	segments, err := trussio.ReadSegments(bytes.NewReader(data), format, opts.DXFOptions())
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := trussio.WriteSegmentsJSON(&buf, segments); err == nil {
		if r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLMesh) == nil {
			observability.Cache().OnCacheSet(ctx, "mesh", buf.Len())
		}
	}
	return segments, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]geom.Segment, error) {
	segments, _, err := r.LoadWithCacheInfo(ctx, opts)
	return segments, err
}

// Build turns segments into a mesh. It only fails for invalid options or a
// cancelled context.
func (r *Runner) Build(ctx context.Context, segments []geom.Segment, opts Options) (*mesh.Mesh, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, len(segments))
	m := mesh.Build(segments, opts.BuildOptions()...)
	observability.Pipeline().OnBuildComplete(ctx, m.NumPoints(), m.NumEdges(), time.Since(start), nil)
	return m, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m *mesh.Mesh, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	meshHash := MeshHash(m)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(meshHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, m, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(meshHash, opts.ArtifactKeyOpts(format))
		if r.Cache.Set(ctx, key, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, m *mesh.Mesh, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// MeshHash returns a content hash of m covering point ids and positions,
// edge point references and tag indices, and the tag dictionary. Two meshes
// hash equal exactly when every exporter writes them identically.
func MeshHash(m *mesh.Mesh) string {
	var buf bytes.Buffer
	for _, p := range m.Points {
		fmt.Fprintf(&buf, "p %d %v %v %v\n", p.ID, p.X, p.Y, p.Z)
	}
	for _, e := range m.Edges {
		fmt.Fprintf(&buf, "e %d %d %d %d %t %q\n", e.ID, e.A, e.B, e.TagIndex, e.Tagged, e.Tag)
	}
	for _, tag := range m.Tags() {
		fmt.Fprintf(&buf, "t %q\n", tag)
	}
	return cache.Hash(buf.Bytes())
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
