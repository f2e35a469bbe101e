package sim

import (
	"math"
	"math/rand/v2"

	"github.com/emberline/emberline/internal/core/physics"
)

// Pattern selects the initial particle distribution of a batch.
type Pattern uint8

const (
	PatternExplosion Pattern = iota
	PatternSpiral
	PatternBurst
)

func (p Pattern) String() string {
	switch p {
	case PatternSpiral:
		return "spiral"
	case PatternBurst:
		return "burst"
	default:
		return "explosion"
	}
}

// ParsePattern maps a config string to a Pattern, defaulting to explosion.
func ParsePattern(s string) Pattern {
	switch s {
	case "spiral":
		return PatternSpiral
	case "burst":
		return PatternBurst
	default:
		return PatternExplosion
	}
}

// Color is carried for the render consumer; the simulator never reads it.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Particle is one member of a batch. Life starts at 1.0 and decays to zero;
// a dead particle keeps its slot but is inert and excluded from snapshots.
type Particle struct {
	Pos  physics.Vec3
	Vel  physics.Vec3
	Life float64
}

// ParticleParams configures a batch at construction.
type ParticleParams struct {
	Count   int
	Pattern Pattern
	Origin  physics.Vec3
	Color   Color

	// DecayRate is life lost per second; Gravity pulls velocity.y down.
	// Zero values fall back to the reference 2.0 / 9.8.
	DecayRate float64
	Gravity   float64
}

// ParticleSimulator owns a fixed-size batch created once at construction and
// integrated in place every tick. When every member has decayed it signals
// completion exactly once, carrying the simulator id so the owner can
// discard it.
type ParticleSimulator struct {
	id        string
	particles []Particle
	color     Color
	decayRate float64
	gravity   float64

	done   bool
	signal func(id string)
}

// NewParticleSimulator generates the batch from the pattern. count <= 0
// short-circuits generation and yields an inert batch that completes on its
// first tick.
func NewParticleSimulator(id string, params ParticleParams, rng *rand.Rand, onComplete func(id string)) *ParticleSimulator {
	s := &ParticleSimulator{
		id:        id,
		color:     params.Color,
		decayRate: params.DecayRate,
		gravity:   params.Gravity,
		signal:    onComplete,
	}
	if s.decayRate <= 0 {
		s.decayRate = 2.0
	}
	if s.gravity <= 0 {
		s.gravity = 9.8
	}
	if params.Count <= 0 {
		return s
	}

	s.particles = make([]Particle, params.Count)
	count := float64(params.Count)
	for i := range s.particles {
		theta := float64(i) / count * 2 * math.Pi
		speed := rangeF(rng, 2, 5)

		var pos, vel physics.Vec3
		switch params.Pattern {
		case PatternSpiral:
			pos = physics.Vec3{Y: float64(i) * 0.1}
			vel = physics.Vec3{X: math.Cos(theta), Y: 2, Z: math.Sin(theta)}.Scale(speed)
		case PatternBurst:
			phi := rangeF(rng, 0, 2*math.Pi)
			incl := rangeF(rng, 0, math.Pi)
			vel = physics.Vec3{
				X: math.Sin(incl) * math.Cos(phi),
				Y: math.Cos(incl),
				Z: math.Sin(incl) * math.Sin(phi),
			}.Scale(speed)
		default: // explosion
			pos = physics.Vec3{X: math.Cos(theta), Y: rangeF(rng, 0, 0.2), Z: math.Sin(theta)}.Scale(0.2)
			vel = physics.Vec3{X: math.Cos(theta), Y: rng.Float64() + 1, Z: math.Sin(theta)}.Scale(speed)
		}

		s.particles[i] = Particle{
			Pos:  params.Origin.Add(pos),
			Vel:  vel,
			Life: 1.0,
		}
	}
	return s
}

// Tick integrates every live member: position by velocity, gravity on
// velocity.y, life by the decay rate. Dead members stay in place. Once all
// members are dead the completion signal fires; later ticks are no-ops.
func (s *ParticleSimulator) Tick(delta float64) {
	if s.done {
		return
	}
	if delta < 0 {
		delta = 0
	}

	allDead := true
	for i := range s.particles {
		p := &s.particles[i]
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(delta))
		p.Vel.Y -= s.gravity * delta
		p.Life -= s.decayRate * delta
		if p.Life > 0 {
			allDead = false
		}
	}

	if allDead {
		s.done = true
		if s.signal != nil {
			s.signal(s.id)
		}
	}
}

func (s *ParticleSimulator) ID() string { return s.id }

func (s *ParticleSimulator) Color() Color { return s.color }

// Done reports whether the completion signal has fired.
func (s *ParticleSimulator) Done() bool { return s.done }

// Alive counts members with remaining life.
func (s *ParticleSimulator) Alive() int {
	n := 0
	for i := range s.particles {
		if s.particles[i].Life > 0 {
			n++
		}
	}
	return n
}

// Particles exposes the batch for read-only consumers.
func (s *ParticleSimulator) Particles() []Particle {
	return s.particles
}
