// Package units converts between the length units a truss mesh can be exported in.
//
// The exporter itself only sees a scalar factor. This package maps the five
// supported units (inch, feet, mm, cm, m) to that factor. Input geometry is
// assumed to be in inches unless told otherwise, since that is the internal
// length unit of SketchUp, where the segments usually come from.
package units

import (
	"fmt"
	"strings"

	"github.com/matzehuels/trussmesh/pkg/errors"
)

// Unit is a length unit.
type Unit int

const (
	Inch Unit = iota
	Feet
	Millimeter
	Centimeter
	Meter
)

// All lists the supported units in the order the SketchUp plugin indexes them.
var All = []Unit{Inch, Feet, Millimeter, Centimeter, Meter}

var meters = map[Unit]float64{
	Inch:       0.0254,
	Feet:       0.3048,
	Millimeter: 0.001,
	Centimeter: 0.01,
	Meter:      1,
}

var names = map[Unit]string{
	Inch:       "inch",
	Feet:       "feet",
	Millimeter: "mm",
	Centimeter: "cm",
	Meter:      "m",
}

var aliases = map[string]Unit{
	"inch": Inch, "inches": Inch, "in": Inch,
	"feet": Feet, "foot": Feet, "ft": Feet,
	"mm": Millimeter, "millimeter": Millimeter, "millimeters": Millimeter,
	"cm": Centimeter, "centimeter": Centimeter, "centimeters": Centimeter,
	"m": Meter, "meter": Meter, "meters": Meter,
}

// String returns the canonical unit name.
func (u Unit) String() string {
	if n, ok := names[u]; ok {
		return n
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Meters returns the length of one u in meters.
func (u Unit) Meters() float64 {
	return meters[u]
}

// Valid reports whether u is one of [All].
func (u Unit) Valid() bool {
	_, ok := meters[u]
	return ok
}

// Parse resolves a unit name or alias, case-insensitively.
func Parse(s string) (Unit, error) {
	if u, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidUnit, "unknown unit %q (must be one of: %s)", s, strings.Join(Names(), ", "))
}

// Names returns the canonical names of [All].
func Names() []string {
	out := make([]string, len(All))
	for i, u := range All {
		out[i] = u.String()
	}
	return out
}

// Factor returns the multiplier converting a length in from into a length in to.
func Factor(from, to Unit) float64 {
	if !from.Valid() || !to.Valid() {
		return 1
	}
	return from.Meters() / to.Meters()
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidUnit, "invalid unit %d", int(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so units can be read from
// JSON and TOML configuration.
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
