package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full engine configuration. Every field has a documented
// default; a missing or partial file silently falls back to those defaults.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`

	// Seed drives all simulation randomness. Zero means "derive from the
	// clock" at engine construction; tests pass an explicit seed.
	Seed uint64 `yaml:"seed"`

	Pool      PoolConfig      `yaml:"pool"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Particles ParticlesConfig `yaml:"particles"`
	Collect   CollectConfig   `yaml:"collect"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// SnapshotHz caps how often snapshots are broadcast to consumers.
	SnapshotHz int `yaml:"snapshot_hz"`
}

type PoolConfig struct {
	// InitialSize is the pre-allocation count for each object pool.
	InitialSize int `yaml:"initial_size"`
}

type SpawnConfig struct {
	// Delay is the time between waves, in seconds.
	Delay float64 `yaml:"delay"`
	// BaseCount and CapCount bound wave size: min(base+waveIndex, cap).
	BaseCount int `yaml:"base_count"`
	CapCount  int `yaml:"cap_count"`
	// TierCount is the number of difficulty tiers; late waves saturate at
	// the last tier.
	TierCount int `yaml:"tier_count"`
	// MinRadius and MaxRadius bound the spawn ring around the origin.
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
}

type ParticlesConfig struct {
	// DecayRate is life lost per second; 2.0 means full decay in 0.5s.
	DecayRate float64 `yaml:"decay_rate"`
	Gravity   float64 `yaml:"gravity"`
}

type CollectConfig struct {
	// Radius is the pickup distance; TTL the unconditional expiry age.
	Radius float64 `yaml:"radius"`
	TTL    float64 `yaml:"ttl"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080, SnapshotHz: 20},
		Pool:   PoolConfig{InitialSize: 50},
		Spawn: SpawnConfig{
			Delay:     15,
			BaseCount: 4,
			CapCount:  12,
			TierCount: 5,
			MinRadius: 8,
			MaxRadius: 14,
		},
		Particles: ParticlesConfig{DecayRate: 2.0, Gravity: 9.8},
		Collect:   CollectConfig{Radius: 2.0, TTL: 30.0},
	}
}

// Load overlays the YAML file at path onto the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize replaces degenerate values with their defaults instead of
// failing. Missing optional parameters are never an error.
func (c *Config) Normalize() {
	def := Default()
	if c.Pool.InitialSize < 0 {
		c.Pool.InitialSize = def.Pool.InitialSize
	}
	if c.Spawn.Delay <= 0 {
		c.Spawn.Delay = def.Spawn.Delay
	}
	if c.Spawn.BaseCount <= 0 {
		c.Spawn.BaseCount = def.Spawn.BaseCount
	}
	if c.Spawn.CapCount < c.Spawn.BaseCount {
		c.Spawn.CapCount = def.Spawn.CapCount
	}
	if c.Spawn.TierCount <= 0 {
		c.Spawn.TierCount = def.Spawn.TierCount
	}
	if c.Spawn.MinRadius <= 0 {
		c.Spawn.MinRadius = def.Spawn.MinRadius
	}
	if c.Spawn.MaxRadius < c.Spawn.MinRadius {
		c.Spawn.MaxRadius = c.Spawn.MinRadius
	}
	if c.Particles.DecayRate <= 0 {
		c.Particles.DecayRate = def.Particles.DecayRate
	}
	if c.Particles.Gravity < 0 {
		c.Particles.Gravity = def.Particles.Gravity
	}
	if c.Collect.Radius <= 0 {
		c.Collect.Radius = def.Collect.Radius
	}
	if c.Collect.TTL <= 0 {
		c.Collect.TTL = def.Collect.TTL
	}
	if c.Server.SnapshotHz <= 0 {
		c.Server.SnapshotHz = def.Server.SnapshotHz
	}
}
