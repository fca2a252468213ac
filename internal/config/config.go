package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cartpole/internal/cartpole"
)

// Model preset names accepted in config files.
const (
	ModelCorrect        = "correct"
	ModelClassicGravity = "classic-gravity"
	ModelClassic        = "classic"
)

type Config struct {
	Model     string          `yaml:"model"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Policy    PolicyConfig    `yaml:"policy"`
	Episode   EpisodeConfig   `yaml:"episode"`
	InitState InitStateConfig `yaml:"init_state"`
}

// PhysicsConfig overrides individual physical parameters of the chosen
// model preset. A zero field keeps the preset's value.
type PhysicsConfig struct {
	HalfTrackLength float64 `yaml:"half_track_length"`
	AngleRange      float64 `yaml:"angle_range"`
	CartMass        float64 `yaml:"cart_mass"`
	PoleMass        float64 `yaml:"pole_mass"`
	HalfPoleLength  float64 `yaml:"half_pole_length"`
	CartFriction    float64 `yaml:"cart_friction"`
	PoleFriction    float64 `yaml:"pole_friction"`
	ForceMag        float64 `yaml:"force_mag"`
	TimeDelta       float64 `yaml:"time_delta"`
	MaxCartSpeed    float64 `yaml:"max_cart_speed"`
	MaxAngleSpeed   float64 `yaml:"max_angle_speed"`
	InfiniteTrack   bool    `yaml:"infinite_track"`
}

type PolicyConfig struct {
	Name string  `yaml:"name"`
	Gain float64 `yaml:"gain"`
	Seed int64   `yaml:"seed"`
}

type EpisodeConfig struct {
	MaxSteps         int     `yaml:"max_steps"`
	MaxAbsoluteAngle float64 `yaml:"max_absolute_angle"`
	Runs             int     `yaml:"runs"`
	Seed             int64   `yaml:"seed"`
}

type InitStateConfig struct {
	X        float64 `yaml:"x"`
	XVel     float64 `yaml:"xv"`
	Angle    float64 `yaml:"angle"`
	AngleVel float64 `yaml:"anglev"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:  ModelCorrect,
		Policy: PolicyConfig{Name: "bangbang", Gain: 0.5},
		Episode: EpisodeConfig{
			MaxSteps: 500,
			Runs:     1,
			Seed:     1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params builds the physical parameter set: the model preset first, then
// any non-zero overrides. The result is validated before use.
func (c *Config) Params() (cartpole.Params, error) {
	p := cartpole.DefaultParams()

	switch c.Model {
	case "", ModelCorrect:
		p.SetToCorrectModel()
	case ModelClassicGravity:
		p.SetToClassicModelWithCorrectGravity()
	case ModelClassic:
		p.SetToClassicModel()
	default:
		return p, fmt.Errorf("unknown model: %s", c.Model)
	}

	o := c.Physics
	if o.HalfTrackLength != 0 {
		p.HalfTrackLength = o.HalfTrackLength
	}
	if o.AngleRange != 0 {
		p.AngleRange = o.AngleRange
	}
	if o.CartMass != 0 {
		p.CartMass = o.CartMass
	}
	if o.PoleMass != 0 {
		p.PoleMass = o.PoleMass
	}
	if o.HalfPoleLength != 0 {
		p.HalfPoleLength = o.HalfPoleLength
	}
	if o.CartFriction != 0 {
		p.CartFriction = o.CartFriction
	}
	if o.PoleFriction != 0 {
		p.PoleFriction = o.PoleFriction
	}
	if o.ForceMag != 0 {
		p.ForceMag = o.ForceMag
	}
	if o.TimeDelta != 0 {
		p.TimeDelta = o.TimeDelta
	}
	if o.MaxCartSpeed != 0 {
		p.MaxCartSpeed = o.MaxCartSpeed
	}
	if o.MaxAngleSpeed != 0 {
		p.MaxAngleSpeed = o.MaxAngleSpeed
	}
	if o.InfiniteTrack {
		p.FiniteTrack = false
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// GetInitState returns the configured episode start.
func (c *Config) GetInitState() cartpole.State {
	return cartpole.NewState(c.InitState.X, c.InitState.XVel,
		c.InitState.Angle, c.InitState.AngleVel)
}

// GetPolicyParams flattens the policy knobs into the registry's form.
func (c *Config) GetPolicyParams() map[string]float64 {
	return map[string]float64{
		"gain": c.Policy.Gain,
		"seed": float64(c.Policy.Seed),
	}
}
