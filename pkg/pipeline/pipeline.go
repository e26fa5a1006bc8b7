// Package pipeline provides the load → build → render pipeline for trussmesh.
//
// The same pipeline backs the CLI and the HTTP API, so both apply identical
// defaults, validation, and caching.
//
// # Stages
//
//  1. Load: read segments from a JSON or DXF file, or take them from Options.Segments
//  2. Build: deduplicate and number points and edges ([mesh.Build])
//  3. Render: produce artifacts in the requested formats (vtk, json, dxf, dot, svg)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "truss.dxf",
//	    Unit:    "m",
//	    Formats: []string{"vtk"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vtk := result.Artifacts["vtk"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trussmesh/pkg/cache"
	"github.com/matzehuels/trussmesh/pkg/errors"
	"github.com/matzehuels/trussmesh/pkg/geom"
	trussio "github.com/matzehuels/trussmesh/pkg/io"
	"github.com/matzehuels/trussmesh/pkg/mesh"
	"github.com/matzehuels/trussmesh/pkg/render/nodelink"
	"github.com/matzehuels/trussmesh/pkg/units"
	"github.com/matzehuels/trussmesh/pkg/vtk"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultOutput is the file written when no output path is given.
	DefaultOutput = "mesh.vtk"

	// DefaultUnit is the export unit.
	DefaultUnit = "inch"

	// DefaultSourceUnit is the unit of the input coordinates. SketchUp
	// reports lengths in inches.
	DefaultSourceUnit = "inch"
)

// Format constants for output formats.
const (
	FormatVTK  = "vtk"
	FormatJSON = "json" // msh document
	FormatDXF  = "dxf"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatVTK:  true,
	FormatJSON: true,
	FormatDXF:  true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the mesh pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input     string         `json:"input,omitempty"`      // .json or .dxf file
	Segments  []geom.Segment `json:"-"`                    // used instead of Input when set
	LayerTags bool           `json:"layer_tags,omitempty"` // DXF layer names become tags
	Refresh   bool           `json:"refresh,omitempty"`

	// Build options
	Ordering string `json:"ordering,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Output     string   `json:"output,omitempty"`
	Title      string   `json:"title,omitempty"`
	SourceUnit string   `json:"source_unit,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Annotate   bool     `json:"annotate,omitempty"`
	Plane      string   `json:"plane,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Mesh is the built mesh.
	Mesh *mesh.Mesh

	// MeshHash is the content hash of the mesh.
	MeshHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SegmentCount int
	PointCount   int
	EdgeCount    int
	TagCount     int
	LoadTime     time.Duration
	BuildTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the segments came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: vtk, json, dxf, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && o.Segments == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input file or segments are required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForBuild validates the ordering.
func (o *Options) ValidateForBuild() error {
	ordering, err := mesh.ParseOrdering(o.Ordering)
	if err != nil {
		return err
	}
	o.Ordering = string(ordering)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatVTK}
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Title == "" {
		o.Title = vtk.DefaultTitle
	}
	if o.Unit == "" {
		o.Unit = DefaultUnit
	}
	if o.SourceUnit == "" {
		o.SourceUnit = DefaultSourceUnit
	}
	if o.Plane == "" {
		o.Plane = string(nodelink.PlaneXZ)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateTitle(o.Title); err != nil {
		return err
	}
	if _, err := units.Parse(o.Unit); err != nil {
		return err
	}
	if _, err := units.Parse(o.SourceUnit); err != nil {
		return fmt.Errorf("source unit: %w", err)
	}
	_, err := nodelink.ParsePlane(o.Plane)
	return err
}

// Factor returns the multiplier from source units to export units.
// Unparseable units yield 1; call ValidateForRender first.
func (o *Options) Factor() float64 {
	from, err := units.Parse(o.SourceUnit)
	if err != nil {
		return 1
	}
	to, err := units.Parse(o.Unit)
	if err != nil {
		return 1
	}
	return units.Factor(from, to)
}

// BuildOptions returns the mesh builder options.
func (o *Options) BuildOptions() []mesh.Option {
	return []mesh.Option{mesh.WithOrdering(mesh.Ordering(o.Ordering))}
}

// DXFOptions returns the DXF import options.
func (o *Options) DXFOptions() trussio.DXFOptions {
	return trussio.DXFOptions{LayerTags: o.LayerTags}
}

// MeshKeyOpts returns cache key options for loading an input of the given format.
func (o *Options) MeshKeyOpts(format string) cache.MeshKeyOpts {
	return cache.MeshKeyOpts{
		Format:    format,
		Ordering:  o.Ordering,
		LayerTags: o.LayerTags,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Options that do not affect a format are left out so they do not split
// the cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Factor: o.Factor()}
	switch format {
	case FormatVTK:
		k.Title = o.Title
	case FormatDXF:
		k.Annotate = o.Annotate
	case FormatDOT, FormatSVG:
		k.Factor = 0
		k.Annotate = o.Annotate
		k.Plane = o.Plane
	}
	return k
}
