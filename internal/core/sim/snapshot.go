package sim

import (
	"github.com/emberline/emberline/internal/core/physics"
	"github.com/emberline/emberline/pkg/sequence"
)

// Snapshot is a self-contained copy of the renderable engine state. The
// render consumer owns it outright; nothing in it aliases live simulation
// data.
type Snapshot struct {
	Frame        int64                 `json:"frame"`
	Elapsed      float64               `json:"elapsed"`
	WaveIndex    int                   `json:"wave_index"`
	Members      []MemberSnapshot      `json:"members"`
	Batches      []BatchSnapshot       `json:"batches"`
	Collectibles []CollectibleSnapshot `json:"collectibles"`
}

type MemberSnapshot struct {
	ID   string       `json:"id"`
	Pos  physics.Vec3 `json:"pos"`
	Tier int          `json:"tier"`
	Wave int          `json:"wave"`
}

type BatchSnapshot struct {
	ID        string             `json:"id"`
	Color     Color              `json:"color"`
	Particles []ParticleSnapshot `json:"particles"`
}

type ParticleSnapshot struct {
	Pos  physics.Vec3 `json:"pos"`
	Life float64      `json:"life"`
}

type CollectibleSnapshot struct {
	ID     string       `json:"id"`
	Pos    physics.Vec3 `json:"pos"`
	Kind   string       `json:"kind"`
	Amount int          `json:"amount"`
	Age    float64      `json:"age"`
}

// Snapshot copies the current state. Dead particles are excluded: they hold
// their slot in the batch but are not rendered.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:     e.frame,
		Elapsed:   e.elapsed,
		WaveIndex: e.spawner.WaveIndex(),
	}

	snap.Members = sequence.ToArray(sequence.From(e.spawner.Members()), func(m *WaveMember) MemberSnapshot {
		return MemberSnapshot{ID: m.ID, Pos: m.Pos, Tier: m.Tier, Wave: m.Wave}
	})

	for _, s := range e.sims {
		live := sequence.From(s.Particles()).Filter(func(p Particle) bool { return p.Life > 0 })
		batch := BatchSnapshot{
			ID:    s.ID(),
			Color: s.Color(),
			Particles: sequence.ToArray(live, func(p Particle) ParticleSnapshot {
				return ParticleSnapshot{Pos: p.Pos, Life: p.Life}
			}),
		}
		snap.Batches = append(snap.Batches, batch)
	}

	snap.Collectibles = sequence.ToArray(sequence.From(e.collector.Active()), func(c *Collectible) CollectibleSnapshot {
		return CollectibleSnapshot{ID: c.ID, Pos: c.Pos, Kind: c.Kind, Amount: c.Amount, Age: c.Age}
	})

	return snap
}
