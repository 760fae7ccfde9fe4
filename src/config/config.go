package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults match the rated values of the reference installation.
const (
	DefaultNumFloors        = 16
	DefaultNumCars          = 3
	DefaultMaxLoadKg        = 680
	DefaultTravelDuration   = 150 * time.Millisecond
	DefaultDoorOpenDuration = 1500 * time.Millisecond
	DefaultDoorHoldPoll     = 50 * time.Millisecond
	DefaultDispatchRetry    = 100 * time.Millisecond
)

// Config carries the construction-time parameters of the elevator core.
// Durations are fixed once the system is built; callers tune them here.
type Config struct {
	SystemName       string        `yaml:"SystemName"`
	NumFloors        int           `yaml:"NumFloors"`
	NumCars          int           `yaml:"NumCars"`
	MaxLoadKg        int           `yaml:"MaxLoadKg"`
	TravelDuration   time.Duration `yaml:"TravelDuration"`
	DoorOpenDuration time.Duration `yaml:"DoorOpenDuration"`
	DoorHoldPoll     time.Duration `yaml:"DoorHoldPoll"`
	DispatchRetry    time.Duration `yaml:"DispatchRetry"`
}

// duration accepts either a time.ParseDuration string ("150ms") or an
// integer nanosecond count; yaml.v3 decodes neither into time.Duration.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var ns int64
	if err := value.Decode(&ns); err == nil {
		*d = duration(ns)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string or integer, got %q", value.Value)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	*d = duration(parsed)
	return nil
}

func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	// Seed the shadow struct from the current values so fields missing
	// from the file keep whatever the caller started with.
	raw := struct {
		SystemName       string   `yaml:"SystemName"`
		NumFloors        int      `yaml:"NumFloors"`
		NumCars          int      `yaml:"NumCars"`
		MaxLoadKg        int      `yaml:"MaxLoadKg"`
		TravelDuration   duration `yaml:"TravelDuration"`
		DoorOpenDuration duration `yaml:"DoorOpenDuration"`
		DoorHoldPoll     duration `yaml:"DoorHoldPoll"`
		DispatchRetry    duration `yaml:"DispatchRetry"`
	}{
		SystemName:       c.SystemName,
		NumFloors:        c.NumFloors,
		NumCars:          c.NumCars,
		MaxLoadKg:        c.MaxLoadKg,
		TravelDuration:   duration(c.TravelDuration),
		DoorOpenDuration: duration(c.DoorOpenDuration),
		DoorHoldPoll:     duration(c.DoorHoldPoll),
		DispatchRetry:    duration(c.DispatchRetry),
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	c.SystemName = raw.SystemName
	c.NumFloors = raw.NumFloors
	c.NumCars = raw.NumCars
	c.MaxLoadKg = raw.MaxLoadKg
	c.TravelDuration = time.Duration(raw.TravelDuration)
	c.DoorOpenDuration = time.Duration(raw.DoorOpenDuration)
	c.DoorHoldPoll = time.Duration(raw.DoorHoldPoll)
	c.DispatchRetry = time.Duration(raw.DispatchRetry)
	return nil
}

func Default() Config {
	return Config{
		NumFloors:        DefaultNumFloors,
		NumCars:          DefaultNumCars,
		MaxLoadKg:        DefaultMaxLoadKg,
		TravelDuration:   DefaultTravelDuration,
		DoorOpenDuration: DefaultDoorOpenDuration,
		DoorHoldPoll:     DefaultDoorHoldPoll,
		DispatchRetry:    DefaultDispatchRetry,
	}
}

// LoadFile reads a YAML config file over the defaults. Missing fields
// keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg.validate()
}

// ApplyEnv overlays settings from a .env file, if one exists at path.
// A missing file is not an error; a malformed one is.
func (c Config) ApplyEnv(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return c, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return c, fmt.Errorf("read env file: %w", err)
	}
	if v, ok := env["LIFTCORE_SYSTEM_NAME"]; ok {
		c.SystemName = v
	}
	if v, ok := env["LIFTCORE_NUM_FLOORS"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.NumFloors = n
		}
	}
	if v, ok := env["LIFTCORE_NUM_CARS"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.NumCars = n
		}
	}
	if v, ok := env["LIFTCORE_MAX_LOAD_KG"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxLoadKg = n
		}
	}
	return c.validate()
}

func (c Config) validate() (Config, error) {
	if c.NumFloors < 2 {
		return c, fmt.Errorf("config: NumFloors must be at least 2, got %d", c.NumFloors)
	}
	if c.NumCars < 1 {
		return c, fmt.Errorf("config: NumCars must be at least 1, got %d", c.NumCars)
	}
	if c.MaxLoadKg <= 0 {
		return c, fmt.Errorf("config: MaxLoadKg must be positive, got %d", c.MaxLoadKg)
	}
	return c, nil
}

// TopFloor is the highest reachable floor number, with floors counted from 0.
func (c Config) TopFloor() int {
	return c.NumFloors - 1
}
