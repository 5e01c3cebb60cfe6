package relax

// config.go reduces the NewLayout API footprint using functional options.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Stiffness presets named in the spring-layout literature this engine is
// modeled on. They are exported so constraint constructors can take a
// named preset instead of a bare float.
const (
	StiffnessXL = 5.0
	StiffnessL  = 1.0
	StiffnessM  = 0.5
	StiffnessS  = 0.01
)

// Default physical constants.
const (
	DefaultFriction     = 1.0
	DefaultTimeStep     = 0.1
	DefaultSafeDistance = 0.2
	DefaultWindowSize   = 5.0
)

// config holds the tunables a Layout is constructed with.
type config struct {
	friction     float64
	timeStep     float64
	safeDistance float64
	strictNames  bool
	logEnergy    bool
}

func defaultConfig() config {
	return config{
		friction:     DefaultFriction,
		timeStep:     DefaultTimeStep,
		safeDistance: DefaultSafeDistance,
		strictNames:  false,
		logEnergy:    false,
	}
}

// Option configures a Layout at construction time.
// For use in NewLayout().
type Option func(*config)

// Friction sets the per-mass damping coefficient μ applied as a -μ*v force
// to every free mass on each force refresh. The default is 1.
func Friction(mu float64) Option {
	return func(c *config) { c.friction = mu }
}

// TimeStep sets the fixed RK4 integration step Δt. The default is 0.1.
func TimeStep(dt float64) Option {
	return func(c *config) {
		if dt > 0 {
			c.timeStep = dt
		}
	}
}

// SafeDistance sets the minimum allowed separation between any two masses,
// enforced by elastic reflection in the safe state applier. The default is 0.2.
func SafeDistance(d float64) Option {
	return func(c *config) {
		if d >= 0 {
			c.safeDistance = d
		}
	}
}

// StrictNames turns on strict duplicate-mass-name detection: adding a
// constraint or mass whose name collides with a different existing mass
// object returns a ConfigError instead of silently rebinding to the
// owned instance. Off by default, matching the historical merge behaviour.
func StrictNames() Option {
	return func(c *config) { c.strictNames = true }
}

// LogEnergy enables the kinetic/potential energy log. Off by default
// since it is purely observational and has a per-step cost.
func LogEnergy() Option {
	return func(c *config) { c.logEnergy = true }
}

// Config is the YAML-serialisable form of the tunables above, for
// applications that prefer to declare engine constants in a file instead
// of a chain of functional options.
type Config struct {
	Friction     *float64 `yaml:"friction,omitempty"`
	TimeStep     *float64 `yaml:"time_step,omitempty"`
	SafeDistance *float64 `yaml:"safe_distance,omitempty"`
	StrictNames  bool     `yaml:"strict_names,omitempty"`
	LogEnergy    bool     `yaml:"log_energy,omitempty"`
}

// LoadConfig reads a YAML document describing the engine constants and
// returns the parsed Config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("relax: LoadConfig: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("relax: LoadConfig: %w", err)
	}
	return c, nil
}

// Options converts a parsed Config into the []Option slice NewLayout expects.
func (c Config) Options() []Option {
	opts := []Option{}
	if c.Friction != nil {
		opts = append(opts, Friction(*c.Friction))
	}
	if c.TimeStep != nil {
		opts = append(opts, TimeStep(*c.TimeStep))
	}
	if c.SafeDistance != nil {
		opts = append(opts, SafeDistance(*c.SafeDistance))
	}
	if c.StrictNames {
		opts = append(opts, StrictNames())
	}
	if c.LogEnergy {
		opts = append(opts, LogEnergy())
	}
	return opts
}
