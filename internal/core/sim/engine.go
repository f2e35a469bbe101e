package sim

import (
	"time"

	"github.com/google/uuid"

	"github.com/emberline/emberline/internal/config"
	"github.com/emberline/emberline/internal/core/events/bus"
	"github.com/emberline/emberline/internal/core/observability/log"
	"github.com/emberline/emberline/internal/core/physics"
	"github.com/emberline/emberline/pkg/generic"
)

// metricsLogInterval is how many frames pass between active-count log lines.
const metricsLogInterval = 300

// Engine owns the transient-object systems and drives them in a fixed order
// each tick: spawner, particle simulators, collector. All engine state is
// mutated only from the goroutine that calls Tick; consumers read through
// Snapshot copies.
type Engine struct {
	cfg config.Config
	log log.Log
	bus bus.EventBus

	seed uint64

	spawner   *SpawnController
	collector *ProximityCollector
	sims      []*ParticleSimulator

	// completed collects simulator ids whose completion event fired during
	// the current tick; they are discarded before the tick returns.
	completed []string

	elapsed float64
	frame   int64
}

// NewEngine wires the subsystems together. A nil logger or bus falls back to
// a no-op logger and a fresh bus.
func NewEngine(cfg config.Config, logger log.Log, eventBus bus.EventBus, credit Ledger) *Engine {
	if logger == nil {
		logger = log.Nop()
	}
	if eventBus == nil {
		eventBus = bus.New()
	}
	cfg.Normalize()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	e := &Engine{
		cfg:  cfg,
		log:  logger,
		bus:  eventBus,
		seed: seed,
	}

	e.spawner = NewSpawnController(
		cfg.Spawn,
		physics.Vec3{},
		cfg.Pool.InitialSize,
		newRand(seedFor(seed, "spawner")),
		func(p WaveSpawnedPayload) {
			_ = e.bus.Publish(bus.NewEvent(EventWaveSpawned, "sim.spawner", p))
			e.log.Info("wave spawned",
				log.Int("wave", p.Index),
				log.Int("tier", p.Tier),
				log.Int("members", len(p.Members)),
			)
		},
	)

	e.collector = NewProximityCollector(
		cfg.Collect,
		cfg.Pool.InitialSize,
		credit,
		func(p CollectedPayload) {
			_ = e.bus.Publish(bus.NewEvent(EventCollected, "sim.collector", p))
		},
		func(p ExpiredPayload) {
			_ = e.bus.Publish(bus.NewEvent(EventExpired, "sim.collector", p))
		},
	)

	_, _ = e.bus.Subscribe(EventParticlesCompleted, func(ev bus.Event) error {
		if id, ok := ev.Data().(string); ok {
			e.completed = append(e.completed, id)
		}
		return nil
	})

	return e
}

// Tick advances the whole engine by one frame. delta is wall-clock seconds
// since the previous call; negative values are clamped to zero.
func (e *Engine) Tick(delta float64) {
	if delta < 0 {
		delta = 0
	}
	e.frame++
	e.elapsed += delta

	e.spawner.Tick(delta)

	for _, s := range e.sims {
		s.Tick(delta)
	}
	e.discardCompleted()

	e.collector.Tick(delta)

	if e.frame%metricsLogInterval == 0 {
		m := e.Metrics()
		e.log.Debug("engine metrics",
			log.Int64("frame", m.Frame),
			log.Int("members", m.ActiveMembers),
			log.Int("particles", m.LiveParticles),
			log.Int("simulators", m.Simulators),
			log.Int("collectibles", m.ActiveCollectibles),
		)
	}
}

// discardCompleted drops simulators whose completion signal fired this tick.
func (e *Engine) discardCompleted() {
	if len(e.completed) == 0 {
		return
	}
	done := make(map[string]struct{}, len(e.completed))
	for _, id := range e.completed {
		done[id] = struct{}{}
	}
	kept := e.sims[:0]
	for _, s := range e.sims {
		if _, ok := done[s.ID()]; !ok {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(e.sims); i++ {
		e.sims[i] = nil
	}
	e.sims = kept
	e.completed = e.completed[:0]
}

// SpawnParticles creates a new particle batch and returns its id. The batch
// is discarded automatically once every member has decayed.
func (e *Engine) SpawnParticles(pattern Pattern, origin physics.Vec3, color Color, count int) string {
	id := uuid.NewString()
	s := NewParticleSimulator(id, ParticleParams{
		Count:     count,
		Pattern:   pattern,
		Origin:    origin,
		Color:     color,
		DecayRate: e.cfg.Particles.DecayRate,
		Gravity:   e.cfg.Particles.Gravity,
	}, newRand(seedFor(e.seed, id)), func(id string) {
		_ = e.bus.Publish(bus.NewEvent(EventParticlesCompleted, "sim.particles", id))
	})
	e.sims = append(e.sims, s)
	return id
}

// DropCollectible places a pickup into the world and returns its id.
func (e *Engine) DropCollectible(pos physics.Vec3, kind string, amount int) string {
	return e.collector.Drop(pos, kind, amount)
}

// KillMember removes a wave member by id; unknown ids are ignored.
func (e *Engine) KillMember(id string) {
	e.spawner.OnMemberDeath(id)
}

// SetCollectorPosition updates the position pickups are measured against.
func (e *Engine) SetCollectorPosition(pos physics.Vec3) {
	e.collector.SetPosition(pos)
}

func (e *Engine) Elapsed() float64 { return e.elapsed }

func (e *Engine) Frame() int64 { return e.frame }

func (e *Engine) Spawner() *SpawnController { return e.spawner }

func (e *Engine) Collector() *ProximityCollector { return e.collector }

func (e *Engine) Simulators() []*ParticleSimulator { return e.sims }

// Metrics is the engine's observability surface: active counts per system
// and the pool partitions behind them.
type Metrics struct {
	Frame              int64
	Elapsed            float64
	ActiveMembers      int
	LiveParticles      int
	Simulators         int
	ActiveCollectibles int
	MemberPool         generic.Stats
	CollectiblePool    generic.Stats
}

func (e *Engine) Metrics() Metrics {
	live := 0
	for _, s := range e.sims {
		live += s.Alive()
	}
	return Metrics{
		Frame:              e.frame,
		Elapsed:            e.elapsed,
		ActiveMembers:      len(e.spawner.Members()),
		LiveParticles:      live,
		Simulators:         len(e.sims),
		ActiveCollectibles: len(e.collector.Active()),
		MemberPool:         e.spawner.PoolStats(),
		CollectiblePool:    e.collector.PoolStats(),
	}
}
