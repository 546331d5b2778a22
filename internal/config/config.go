// Package config loads homebot configuration from YAML files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/teslashibe/go-homebot/pkg/planner"
	"github.com/teslashibe/go-homebot/pkg/power"
	"github.com/teslashibe/go-homebot/pkg/world"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

var validate = validator.New()

// Config is the full homebot configuration.
type Config struct {
	ID      string         `yaml:"id" validate:"required"`
	Planner string         `yaml:"planner" validate:"oneof=astar greedy"`
	Origin  world.Waypoint `yaml:"origin"`
	Charger world.Waypoint `yaml:"charger"`
	Battery Battery        `yaml:"battery"`
	World   World          `yaml:"world"`
	Log     Log            `yaml:"log"`
}

// Battery configures the power model.
type Battery struct {
	Initial power.Level  `yaml:"initial" validate:"gte=0,lte=100"`
	Policy  power.Policy `yaml:"policy"`
	Costs   power.Costs  `yaml:"costs"`
}

// World seeds the environment.
type World struct {
	Obstacles []world.Waypoint `yaml:"obstacles"`
	Objects   []ObjectSpec     `yaml:"objects" validate:"dive"`
}

// ObjectSpec describes an object placed in the world at startup. An empty
// ID is generated.
type ObjectSpec struct {
	Kind     string         `yaml:"kind" validate:"required"`
	ID       string         `yaml:"id"`
	Position world.Waypoint `yaml:"position"`
}

// Log configures internal/log.
type Log struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Default returns the built-in configuration: a default world with a
// couple of objects to pick, the charger south of the origin and a full
// battery.
func Default() Config {
	return Config{
		ID:      "homebot-" + uuid.NewString()[:8],
		Planner: planner.KindAStar,
		Origin:  world.Origin,
		Charger: world.Pt(0, -1),
		Battery: Battery{
			Initial: power.Full,
			Policy:  power.DefaultPolicy(),
			Costs:   power.DefaultCosts(),
		},
		World: World{
			Obstacles: append([]world.Waypoint(nil), world.DefaultObstacles...),
			Objects: []ObjectSpec{
				{Kind: "bottle", Position: world.Pt(3, 1)},
				{Kind: "cup", Position: world.Pt(1, 2)},
			},
		},
		Log: Log{Level: "info"},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (or
// HOMEBOT_CONFIG when path is empty), then environment overrides. The
// result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = Path()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ROBOT_ID, HOMEBOT_PLANNER and LOG_LEVEL.
func (c *Config) ApplyEnv() {
	c.ID = RobotID(c.ID)
	c.Planner = strings.ToLower(PlannerKind(c.Planner))
	c.Log.Level = LogLevel(c.Log.Level)
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Environment builds a world.Environment from the World section.
func (c Config) Environment() *world.Environment {
	env := world.NewEmptyEnvironment()
	env.AddObstacle(c.World.Obstacles...)
	for _, o := range c.World.Objects {
		env.PutObject(world.Object{Kind: o.Kind, ID: o.ID, Position: o.Position})
	}
	return env
}

// Policy returns the battery thresholds.
func (c Config) Policy() power.Policy { return c.Battery.Policy }

// Costs returns the per-action battery costs.
func (c Config) Costs() power.Costs { return c.Battery.Costs }

// NewPlanner returns the configured planning strategy.
func (c Config) NewPlanner() (planner.Planner, error) {
	return planner.New(c.Planner)
}
