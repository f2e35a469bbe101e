package sim

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/emberline/emberline/internal/config"
	"github.com/emberline/emberline/internal/core/physics"
	"github.com/emberline/emberline/pkg/generic"
)

// WaveMember is one spawned entity. Members are pooled: the struct is
// recycled on death, so holders must not retain a pointer past the member's
// lifetime.
type WaveMember struct {
	ID   string
	Pos  physics.Vec3
	Tier int
	Wave int
}

type memberInit struct {
	id   string
	pos  physics.Vec3
	tier int
	wave int
}

// SpawnController drives periodic wave emission. A timer accumulates tick
// deltas; reaching the configured delay resets it to zero and emits one
// wave. Members persist until individually killed; there is no group
// despawn.
type SpawnController struct {
	cfg    config.SpawnConfig
	origin physics.Vec3
	rng    *rand.Rand

	timer     float64
	waveIndex int

	pool *generic.Pool[*WaveMember, memberInit]
	byID map[string]*WaveMember

	onWave func(WaveSpawnedPayload)
}

// NewSpawnController builds a controller with a pre-warmed member pool.
// onWave, when set, is invoked synchronously for every emitted wave.
func NewSpawnController(cfg config.SpawnConfig, origin physics.Vec3, poolSize int, rng *rand.Rand, onWave func(WaveSpawnedPayload)) *SpawnController {
	return &SpawnController{
		cfg:    cfg,
		origin: origin,
		rng:    rng,
		pool: generic.NewHotPool(
			func() *WaveMember { return &WaveMember{} },
			func(m *WaveMember, init memberInit) {
				m.ID = init.id
				m.Pos = init.pos
				m.Tier = init.tier
				m.Wave = init.wave
			},
			poolSize,
		),
		byID:   make(map[string]*WaveMember),
		onWave: onWave,
	}
}

// Tick advances the spawn timer. At most one wave is emitted per tick, even
// after a long frame.
func (c *SpawnController) Tick(delta float64) {
	if delta < 0 {
		delta = 0
	}
	c.timer += delta
	if c.timer >= c.cfg.Delay {
		c.timer = 0
		c.spawnWave()
	}
}

// spawnWave emits wave waveIndex+1 atomically. Size is min(base+index, cap);
// tier is min(index/2, tiers-1) so late waves saturate at the hardest tier.
// Members sit at equal angular steps around the origin, each at its own
// radius drawn from the configured band to avoid clustering.
func (c *SpawnController) spawnWave() {
	c.waveIndex++

	count := c.cfg.BaseCount + c.waveIndex
	if count > c.cfg.CapCount {
		count = c.cfg.CapCount
	}
	tier := c.waveIndex / 2
	if tier > c.cfg.TierCount-1 {
		tier = c.cfg.TierCount - 1
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * 2 * math.Pi
		radius := rangeF(c.rng, c.cfg.MinRadius, c.cfg.MaxRadius)
		pos := c.origin.Add(physics.Vec3{
			X: math.Cos(angle) * radius,
			Z: math.Sin(angle) * radius,
		})

		m := c.pool.Acquire(memberInit{
			id:   uuid.NewString(),
			pos:  pos,
			tier: tier,
			wave: c.waveIndex,
		})
		c.byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	if c.onWave != nil {
		c.onWave(WaveSpawnedPayload{Index: c.waveIndex, Tier: tier, Members: ids})
	}
}

// OnMemberDeath releases exactly the member with the given id back to the
// pool. Unknown ids are ignored.
func (c *SpawnController) OnMemberDeath(id string) {
	m, ok := c.byID[id]
	if !ok {
		return
	}
	delete(c.byID, id)
	c.pool.Release(m)
}

// Members is the read-only view of the current active membership. Order is
// unspecified but stable between mutations.
func (c *SpawnController) Members() []*WaveMember {
	return c.pool.Active()
}

func (c *SpawnController) WaveIndex() int { return c.waveIndex }

func (c *SpawnController) PoolStats() generic.Stats { return c.pool.Stats() }
