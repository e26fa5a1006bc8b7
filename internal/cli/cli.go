// Package cli implements the trussmesh command-line interface.
//
// # Commands
//
//   - export: build a mesh from a JSON or DXF segment file and write VTK (or json, dxf, dot, svg)
//   - annotate: write a DXF drawing with point and edge id labels
//   - inspect: summarize a segment file or an exported VTK file
//   - render: draw the mesh connectivity as SVG
//   - serve: run the HTTP API
//   - cache: manage the artifact cache
//   - units: list export units and their factors
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trussmesh/pkg/cache"
	"github.com/matzehuels/trussmesh/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "trussmesh"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
	config     *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: &Config{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.config.cacheConfig(noCache)
	if err != nil {
		printWarning("Cache disabled: %v", err)
		cc = cache.Config{Backend: cache.BackendNone}
	}
	store, err := cache.Open(ctx, cc)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("cache", "backend", cc.Backend, "dir", cc.Dir, "prefix", cc.Prefix, "key_version", cache.KeyVersion)
	return pipeline.NewRunner(store, cc.Keyer(), c.Logger), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/trussmesh/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyConfig fills options not set by flags from the config file.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	c.config.applyTo(opts)
	if f := cmd.Flags().Lookup("layer-tags"); f != nil && !f.Changed {
		opts.LayerTags = c.config.LayerTags
	}
	opts.Logger = c.Logger
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string leaves the choice to the config file or the pipeline default.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// artifactPaths maps each format to the file it is written to. A single
// format whose extension matches output is written to output; otherwise
// the extension of output is replaced by the format name.
func artifactPaths(output string, formats []string) map[string]string {
	if output == "" {
		output = pipeline.DefaultOutput
	}
	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)

	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		if len(formats) == 1 && strings.EqualFold(ext, "."+f) {
			paths[f] = output
			continue
		}
		paths[f] = base + "." + f
	}
	return paths
}
