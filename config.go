package collision

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blazinaj/gamescape-sub001/actor"
)

// Config is the tuning surface of the world. The defaults work for a
// world where actors are roughly a meter across; the cell size is a
// broad-phase tuning constant, chosen so the median candidate count per
// query stays small, and is deliberately not derived from object radii.
type Config struct {
	// CellSize is the broad-phase grid cell edge, in world units.
	CellSize float64 `yaml:"cell_size"`
	// GridCells is the bucket count, rounded up to a power of two.
	GridCells int `yaml:"grid_cells"`
	// ContactEpsilon bounds the "no displacement" early-out and the
	// strictly-before-target check of sight casts.
	ContactEpsilon float64 `yaml:"contact_epsilon"`
	// MaxRayDistance caps sight casts that pass no tighter limit.
	MaxRayDistance float64 `yaml:"max_ray_distance"`
	// SightIgnore lists categories that never occlude sight, on top of
	// whatever a caller excludes per cast.
	SightIgnore []actor.Category `yaml:"sight_ignore"`
}

// DefaultConfig returns the tuning the game ships with.
func DefaultConfig() Config {
	return Config{
		CellSize:       4,
		GridCells:      1024,
		ContactEpsilon: 1e-6,
		MaxRayDistance: 100,
		SightIgnore:    []actor.Category{actor.CategoryTrigger},
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.CellSize <= 0 {
		c.CellSize = def.CellSize
	}
	if c.GridCells <= 0 {
		c.GridCells = def.GridCells
	}
	if c.ContactEpsilon <= 0 {
		c.ContactEpsilon = def.ContactEpsilon
	}
	if c.MaxRayDistance <= 0 {
		c.MaxRayDistance = def.MaxRayDistance
	}
	return c
}

// LoadConfig reads a YAML tuning file. Fields the file omits keep their
// defaults, so a partial override file is fine.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

// Save writes the config as YAML.
func (c Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}
