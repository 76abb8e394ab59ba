package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/blackholes/internal/audio"
	"github.com/san-kum/blackholes/internal/experiment"
	"github.com/san-kum/blackholes/internal/physics"
)

const (
	DefaultMass       = 1.0
	DefaultDt         = 0.01
	DefaultDuration   = 40.0
	DefaultFirstMass  = 3.0
	DefaultSecondMass = 1.5
	DefaultPlayback   = 20.0
	DefaultTimescale  = 0.05
	DefaultFPS        = 30.0
)

type Config struct {
	Orbit    OrbitConfig  `yaml:"orbit"`
	Binary   BinaryConfig `yaml:"binary"`
	Audio    AudioConfig  `yaml:"audio"`
	DataDir  string       `yaml:"data_dir"`
	LogLevel string       `yaml:"log_level"`
}

// OrbitConfig selects a test particle by its two controls. Dt and Duration
// are in units of the Newtonian simulation timescale.
type OrbitConfig struct {
	Mass            float64 `yaml:"mass"`
	AngularMomentum float64 `yaml:"angular_momentum"`
	Energy          float64 `yaml:"energy"`
	Integrator      string  `yaml:"integrator"`
	Dt              float64 `yaml:"dt"`
	Duration        float64 `yaml:"duration"`
	Adaptive        bool    `yaml:"adaptive"`
	Tolerance       float64 `yaml:"tolerance"`
}

// BinaryConfig describes an inspiral and its playback. Duration is in
// wall-clock seconds.
type BinaryConfig struct {
	FirstMass    float64 `yaml:"first_mass"`
	SecondMass   float64 `yaml:"second_mass"`
	InitialAngle float64 `yaml:"initial_angle"`
	Duration     float64 `yaml:"duration"`
	Timescale    float64 `yaml:"timescale"`
	FPS          float64 `yaml:"fps"`
}

// AudioConfig durations are in seconds.
type AudioConfig struct {
	SampleRate     int     `yaml:"sample_rate"`
	UpdateInterval float64 `yaml:"update_interval"`
	Amplitude      float64 `yaml:"amplitude"`
	Tail           float64 `yaml:"tail"`
	Fade           float64 `yaml:"fade"`
}

func DefaultConfig() *Config {
	a := audio.DefaultConfig()
	return &Config{
		Orbit: OrbitConfig{
			Mass:            DefaultMass,
			AngularMomentum: 0.5,
			Energy:          0.25,
			Integrator:      "rk4",
			Dt:              DefaultDt,
			Duration:        DefaultDuration,
			Tolerance:       1e-9,
		},
		Binary: BinaryConfig{
			FirstMass:  DefaultFirstMass,
			SecondMass: DefaultSecondMass,
			Duration:   DefaultPlayback,
			Timescale:  DefaultTimescale,
			FPS:        DefaultFPS,
		},
		Audio: AudioConfig{
			SampleRate:     a.SampleRate,
			UpdateInterval: a.UpdateInterval.Seconds(),
			Amplitude:      a.Amplitude,
			Tail:           a.Tail.Seconds(),
			Fade:           a.Fade.Seconds(),
		},
		DataDir:  ".blackholes",
		LogLevel: "info",
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

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	o := c.Orbit
	switch {
	case !positive(o.Mass):
		return fmt.Errorf("orbit.mass must be positive, got %g", o.Mass)
	case !unit(o.AngularMomentum):
		return fmt.Errorf("orbit.angular_momentum must be in [0, 1], got %g", o.AngularMomentum)
	case !unit(o.Energy):
		return fmt.Errorf("orbit.energy must be in [0, 1], got %g", o.Energy)
	case !positive(o.Dt):
		return fmt.Errorf("orbit.dt must be positive, got %g", o.Dt)
	case !positive(o.Duration):
		return fmt.Errorf("orbit.duration must be positive, got %g", o.Duration)
	}

	b := c.Binary
	switch {
	case !positive(b.FirstMass):
		return fmt.Errorf("binary.first_mass must be positive, got %g", b.FirstMass)
	case !positive(b.SecondMass):
		return fmt.Errorf("binary.second_mass must be positive, got %g", b.SecondMass)
	case !positive(b.Duration):
		return fmt.Errorf("binary.duration must be positive, got %g", b.Duration)
	case !positive(b.Timescale):
		return fmt.Errorf("binary.timescale must be positive, got %g", b.Timescale)
	case !positive(b.FPS):
		return fmt.Errorf("binary.fps must be positive, got %g", b.FPS)
	}

	if err := c.Audio.Audio().Validate(); err != nil {
		return err
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// positive rejects NaN and infinities along with non-positive values.
func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func (o OrbitConfig) Experiment() experiment.OrbitConfig {
	return experiment.OrbitConfig{
		Mass:                     o.Mass,
		AngularMomentumMagnitude: o.AngularMomentum,
		EnergyMagnitude:          o.Energy,
		Integrator:               o.Integrator,
		Dt:                       o.Dt,
		Duration:                 o.Duration,
		Adaptive:                 o.Adaptive,
		Tolerance:                o.Tolerance,
	}
}

func (b BinaryConfig) System() (physics.BinarySystem, error) {
	return physics.NewBinarySystem(b.FirstMass, b.SecondMass, b.InitialAngle)
}

func (b BinaryConfig) Timeline() (experiment.Timeline, error) {
	sys, err := b.System()
	if err != nil {
		return experiment.Timeline{}, err
	}
	tl := experiment.NewTimeline(sys)
	tl.Duration = seconds(b.Duration)
	tl.Timescale = b.Timescale
	return tl, tl.Validate()
}

// Align sets InitialAngle so the binary starts playback on the x axis.
func (b *BinaryConfig) Align() error {
	tl, err := b.Timeline()
	if err != nil {
		return err
	}
	tl, err = tl.Align()
	if err != nil {
		return err
	}
	b.InitialAngle = tl.Binary.InitialAngle
	return nil
}

func (a AudioConfig) Audio() audio.Config {
	return audio.Config{
		SampleRate:     a.SampleRate,
		UpdateInterval: seconds(a.UpdateInterval),
		Amplitude:      a.Amplitude,
		Tail:           seconds(a.Tail),
		Fade:           seconds(a.Fade),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
