package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/emberline/internal/config"
	"github.com/emberline/emberline/internal/core/physics"
)

type collectorHarness struct {
	c         *ProximityCollector
	credits   []int
	collected []CollectedPayload
	expired   []ExpiredPayload
}

func newCollectorHarness(cfg config.CollectConfig) *collectorHarness {
	h := &collectorHarness{}
	h.c = NewProximityCollector(cfg, 8,
		func(amount int) { h.credits = append(h.credits, amount) },
		func(p CollectedPayload) { h.collected = append(h.collected, p) },
		func(p ExpiredPayload) { h.expired = append(h.expired, p) },
	)
	return h
}

func TestCollectionCreditsExactlyOnce(t *testing.T) {
	h := newCollectorHarness(config.Default().Collect)
	h.c.SetPosition(physics.Vec3{})

	h.c.Drop(physics.Vec3{X: 1}, "gold", 25)
	require.Len(t, h.c.Active(), 1)

	h.c.Tick(0.016)

	assert.Equal(t, []int{25}, h.credits)
	require.Len(t, h.collected, 1)
	assert.Equal(t, "gold", h.collected[0].Kind)
	assert.Empty(t, h.c.Active())

	// The item is gone; more ticks cannot re-trigger the transfer.
	h.c.Tick(0.016)
	assert.Equal(t, []int{25}, h.credits)
}

func TestOutOfRangeItemExpiresWithoutCredit(t *testing.T) {
	h := newCollectorHarness(config.CollectConfig{Radius: 2, TTL: 30})
	h.c.SetPosition(physics.Vec3{})

	h.c.Drop(physics.Vec3{X: 100}, "gold", 10)

	for i := 0; i < 30; i++ {
		h.c.Tick(1.0)
	}
	require.Len(t, h.c.Active(), 1, "ttl not yet exceeded at age == ttl")

	h.c.Tick(1.0)

	assert.Empty(t, h.credits)
	assert.Empty(t, h.collected)
	require.Len(t, h.expired, 1)
	assert.Empty(t, h.c.Active())
}

func TestCollectionWinsOverExpirySameTick(t *testing.T) {
	h := newCollectorHarness(config.CollectConfig{Radius: 2, TTL: 1})
	h.c.SetPosition(physics.Vec3{})

	h.c.Drop(physics.Vec3{X: 1}, "gem", 5)

	// One long frame pushes age past the TTL, but the item is in range:
	// collection is evaluated first.
	h.c.Tick(5.0)

	assert.Equal(t, []int{5}, h.credits)
	assert.Empty(t, h.expired)
}

func TestAgeAccumulatesOnlyWhileAlive(t *testing.T) {
	h := newCollectorHarness(config.CollectConfig{Radius: 2, TTL: 30})
	h.c.SetPosition(physics.Vec3{X: 100})

	h.c.Drop(physics.Vec3{}, "gold", 1)
	h.c.Tick(1.5)
	h.c.Tick(1.5)

	require.Len(t, h.c.Active(), 1)
	assert.InDelta(t, 3.0, h.c.Active()[0].Age, 1e-12)
}

func TestMixedBatchResolvesIndependently(t *testing.T) {
	h := newCollectorHarness(config.CollectConfig{Radius: 2, TTL: 30})
	h.c.SetPosition(physics.Vec3{})

	near := h.c.Drop(physics.Vec3{X: 0.5}, "gold", 3)
	far := h.c.Drop(physics.Vec3{X: 50}, "gold", 7)

	h.c.Tick(0.016)

	require.Len(t, h.collected, 1)
	assert.Equal(t, near, h.collected[0].ID)
	require.Len(t, h.c.Active(), 1)
	assert.Equal(t, far, h.c.Active()[0].ID)

	stats := h.c.PoolStats()
	assert.Equal(t, int(stats.Total), stats.Free+stats.Active)
}
