package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/emberline/internal/core/physics"
)

func newSim(t *testing.T, pattern Pattern, count int, completions *int) *ParticleSimulator {
	t.Helper()
	return NewParticleSimulator("batch-1", ParticleParams{
		Count:   count,
		Pattern: pattern,
		Origin:  physics.Vec3{X: 1, Y: 2, Z: 3},
	}, newRand(42), func(id string) {
		assert.Equal(t, "batch-1", id)
		*completions++
	})
}

func TestExplosionDecaysInHalfSecond(t *testing.T) {
	completions := 0
	s := newSim(t, PatternExplosion, 20, &completions)

	require.Len(t, s.Particles(), 20)
	assert.Equal(t, 20, s.Alive())

	s.Tick(0.5)

	assert.Equal(t, 0, s.Alive())
	assert.True(t, s.Done())
	assert.Equal(t, 1, completions)

	// Further ticks never re-signal.
	s.Tick(0.5)
	s.Tick(0.5)
	assert.Equal(t, 1, completions)
}

func TestLifeIsMonotonicallyNonIncreasing(t *testing.T) {
	completions := 0
	s := newSim(t, PatternBurst, 12, &completions)

	prev := make([]float64, 12)
	for i, p := range s.Particles() {
		prev[i] = p.Life
		assert.Equal(t, 1.0, p.Life)
	}

	for tick := 0; tick < 8; tick++ {
		s.Tick(0.1)
		for i, p := range s.Particles() {
			assert.LessOrEqual(t, p.Life, prev[i])
			prev[i] = p.Life
		}
	}
}

func TestPatternInitialPlacement(t *testing.T) {
	origin := physics.Vec3{X: 1, Y: 2, Z: 3}

	completions := 0
	burst := newSim(t, PatternBurst, 10, &completions)
	for _, p := range burst.Particles() {
		// Burst members all start at the origin.
		assert.Equal(t, origin, p.Pos)
	}

	spiral := newSim(t, PatternSpiral, 10, &completions)
	for i, p := range spiral.Particles() {
		assert.InDelta(t, origin.Y+float64(i)*0.1, p.Pos.Y, 1e-12)
		assert.Equal(t, origin.X, p.Pos.X)
		assert.Equal(t, origin.Z, p.Pos.Z)
	}

	explosion := newSim(t, PatternExplosion, 10, &completions)
	for _, p := range explosion.Particles() {
		// Explosion members start on a ring of radius 0.2 around the origin.
		d := physics.Distance2(origin.X, origin.Z, p.Pos.X, p.Pos.Z)
		assert.InDelta(t, 0.2, d, 1e-9)
	}
}

func TestGravityPullsVelocityDown(t *testing.T) {
	completions := 0
	s := newSim(t, PatternSpiral, 4, &completions)

	before := make([]float64, 4)
	for i, p := range s.Particles() {
		before[i] = p.Vel.Y
	}
	s.Tick(0.1)
	for i, p := range s.Particles() {
		assert.InDelta(t, before[i]-9.8*0.1, p.Vel.Y, 1e-9)
	}
}

func TestZeroCountBatchIsInert(t *testing.T) {
	completions := 0
	s := newSim(t, PatternExplosion, 0, &completions)

	assert.Empty(t, s.Particles())
	assert.Equal(t, 0, s.Alive())

	s.Tick(0.016)
	assert.True(t, s.Done())
	assert.Equal(t, 1, completions)

	s.Tick(0.016)
	assert.Equal(t, 1, completions)
}

func TestParsePattern(t *testing.T) {
	assert.Equal(t, PatternSpiral, ParsePattern("spiral"))
	assert.Equal(t, PatternBurst, ParsePattern("burst"))
	assert.Equal(t, PatternExplosion, ParsePattern("explosion"))
	assert.Equal(t, PatternExplosion, ParsePattern("anything else"))
}
