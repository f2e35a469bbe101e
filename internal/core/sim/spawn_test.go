package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/emberline/internal/config"
	"github.com/emberline/emberline/internal/core/physics"
)

func newTestController(waves *[]WaveSpawnedPayload) *SpawnController {
	cfg := config.Default().Spawn
	return NewSpawnController(cfg, physics.Vec3{}, 16, newRand(7), func(p WaveSpawnedPayload) {
		*waves = append(*waves, p)
	})
}

func TestTimerEmitsWaveAtDelay(t *testing.T) {
	var waves []WaveSpawnedPayload
	c := newTestController(&waves)

	c.Tick(14.9)
	assert.Empty(t, waves, "wave emitted before delay elapsed")

	c.Tick(0.1)
	require.Len(t, waves, 1)
	assert.Equal(t, 1, c.WaveIndex())
}

func TestWaveSizing(t *testing.T) {
	var waves []WaveSpawnedPayload
	c := newTestController(&waves)

	for i := 0; i < 10; i++ {
		c.Tick(15)
	}
	require.Len(t, waves, 10)

	// min(4+1, 12) = 5 for the first wave; min(4+10, 12) = 12 for the tenth.
	assert.Len(t, waves[0].Members, 5)
	assert.Len(t, waves[9].Members, 12)
}

func TestTierSaturatesAtLastTier(t *testing.T) {
	var waves []WaveSpawnedPayload
	c := newTestController(&waves)

	for i := 0; i < 20; i++ {
		c.Tick(15)
	}

	for _, w := range waves {
		assert.LessOrEqual(t, w.Tier, 4)
	}
	// Wave 20 with 5 tiers: min(10, 4) = 4.
	assert.Equal(t, 4, waves[19].Tier)
}

func TestPlacementStaysInRadiusBand(t *testing.T) {
	var waves []WaveSpawnedPayload
	c := newTestController(&waves)

	c.Tick(15)
	cfg := config.Default().Spawn
	for _, m := range c.Members() {
		r := physics.Distance2(0, 0, m.Pos.X, m.Pos.Z)
		assert.GreaterOrEqual(t, r, cfg.MinRadius)
		assert.Less(t, r, cfg.MaxRadius)
	}
}

func TestMemberDeathRemovesExactlyOne(t *testing.T) {
	var waves []WaveSpawnedPayload
	c := newTestController(&waves)

	c.Tick(15)
	require.Len(t, c.Members(), 5)

	victim := c.Members()[2].ID
	c.OnMemberDeath(victim)

	assert.Len(t, c.Members(), 4)
	for _, m := range c.Members() {
		assert.NotEqual(t, victim, m.ID)
	}

	// Unknown ids and repeated deaths are no-ops.
	c.OnMemberDeath(victim)
	c.OnMemberDeath("never-existed")
	assert.Len(t, c.Members(), 4)
}

func TestMembersPersistAcrossWaves(t *testing.T) {
	var waves []WaveSpawnedPayload
	c := newTestController(&waves)

	c.Tick(15)
	c.Tick(15)

	// 5 from wave one plus 6 from wave two; no implicit despawn.
	assert.Len(t, c.Members(), 11)

	stats := c.PoolStats()
	assert.Equal(t, 11, stats.Active)
	assert.Equal(t, int(stats.Total), stats.Free+stats.Active)
}

func TestLongFrameEmitsSingleWave(t *testing.T) {
	var waves []WaveSpawnedPayload
	c := newTestController(&waves)

	// A 60s stall still produces one wave: the timer resets to zero on emit.
	c.Tick(60)
	assert.Len(t, waves, 1)
}
