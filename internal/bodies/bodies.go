// Package bodies is the celestial body catalog: radius, gravitational
// parameter, atmosphere depth and the lowest terrain-safe orbit of each body.
package bodies

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed bodies.yaml
var defaultCatalog []byte

// Body describes one celestial body.
type Body struct {
	Name            string  `yaml:"name"`
	Radius          float64 `yaml:"radius"`
	Mu              float64 `yaml:"mu"`
	AtmosphereDepth float64 `yaml:"atmosphere_depth"`
	SafeAltitude    float64 `yaml:"safe_altitude"`
}

// HasAtmosphere reports whether the body has an atmosphere.
func (b Body) HasAtmosphere() bool {
	return b.AtmosphereDepth > 0
}

// SurfaceGravity is mu/r² in m/s².
func (b Body) SurfaceGravity() float64 {
	if b.Radius <= 0 {
		return 0
	}
	return b.Mu / (b.Radius * b.Radius)
}

// Catalog is a set of bodies looked up by case-insensitive name.
type Catalog struct {
	DefaultSafeAltitude float64 `yaml:"default_safe_altitude"`
	Bodies              []Body  `yaml:"bodies"`

	index map[string]int
}

// Default returns the stock catalog.
func Default() *Catalog {
	c, err := parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("bodies: embedded catalog: %v", err))
	}
	return c
}

// LoadFile loads the stock catalog and applies the overrides in path on top
// of it: entries with a known name replace the stock body, others are added.
// An empty path returns the stock catalog.
func LoadFile(path string) (*Catalog, error) {
	cat := Default()
	if strings.TrimSpace(path) == "" {
		return cat, nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return cat, fmt.Errorf("read body catalog: %w", err)
	}
	override, err := parse(bs)
	if err != nil {
		return cat, fmt.Errorf("parse body catalog %s: %w", path, err)
	}
	cat.Merge(override)
	return cat, nil
}

func parse(bs []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(bs, &c); err != nil {
		return nil, err
	}
	for i, b := range c.Bodies {
		if strings.TrimSpace(b.Name) == "" {
			return nil, fmt.Errorf("bodies[%d]: name is required", i)
		}
		if b.Radius < 0 || b.Mu < 0 || b.AtmosphereDepth < 0 || b.SafeAltitude < 0 {
			return nil, fmt.Errorf("bodies[%d] %s: values must not be negative", i, b.Name)
		}
	}
	c.reindex()
	return &c, nil
}

func (c *Catalog) reindex() {
	c.index = make(map[string]int, len(c.Bodies))
	for i, b := range c.Bodies {
		c.index[strings.ToLower(b.Name)] = i
	}
}

// Merge folds other into c.
func (c *Catalog) Merge(other *Catalog) {
	if other.DefaultSafeAltitude > 0 {
		c.DefaultSafeAltitude = other.DefaultSafeAltitude
	}
	for _, b := range other.Bodies {
		if i, ok := c.index[strings.ToLower(b.Name)]; ok {
			c.Bodies[i] = b
			continue
		}
		c.Bodies = append(c.Bodies, b)
	}
	c.reindex()
}

// Lookup finds a body by name.
func (c *Catalog) Lookup(name string) (Body, bool) {
	i, ok := c.index[strings.ToLower(name)]
	if !ok {
		return Body{}, false
	}
	return c.Bodies[i], true
}

// OrbitFloor is the altitude below which an orbit is unsafe around the named
// body: the top of the atmosphere, or the terrain-safe altitude on airless
// bodies. Unknown bodies use the default safe altitude.
func (c *Catalog) OrbitFloor(name string) float64 {
	b, ok := c.Lookup(name)
	switch {
	case !ok:
		return c.DefaultSafeAltitude
	case b.HasAtmosphere():
		return b.AtmosphereDepth
	case b.SafeAltitude > 0:
		return b.SafeAltitude
	}
	return c.DefaultSafeAltitude
}

// Names lists the catalog in order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.Bodies))
	for i, b := range c.Bodies {
		out[i] = b.Name
	}
	return out
}
