package sim

import (
	"github.com/google/uuid"

	"github.com/emberline/emberline/internal/config"
	"github.com/emberline/emberline/internal/core/physics"
	"github.com/emberline/emberline/pkg/generic"
	"github.com/emberline/emberline/pkg/sequence"
)

// Collectible is a pooled pickup. Age accumulates from zero; the collectible
// is destroyed on collection or when age exceeds the TTL, whichever happens
// first.
type Collectible struct {
	ID     string
	Pos    physics.Vec3
	Kind   string
	Amount int
	Age    float64
}

type collectibleInit struct {
	id     string
	pos    physics.Vec3
	kind   string
	amount int
}

// Ledger is the single mutating entry point of the external resource ledger.
// The collector calls it at most once per collectible.
type Ledger func(amount int)

// ProximityCollector retires collectibles by distance or by age. It owns the
// collectible pool; callers create items through Drop and never remove them
// directly.
type ProximityCollector struct {
	cfg    config.CollectConfig
	credit Ledger
	pos    physics.Vec3

	pool *generic.Pool[*Collectible, collectibleInit]

	onCollected func(CollectedPayload)
	onExpired   func(ExpiredPayload)
}

func NewProximityCollector(cfg config.CollectConfig, poolSize int, credit Ledger, onCollected func(CollectedPayload), onExpired func(ExpiredPayload)) *ProximityCollector {
	return &ProximityCollector{
		cfg:    cfg,
		credit: credit,
		pool: generic.NewHotPool(
			func() *Collectible { return &Collectible{} },
			func(c *Collectible, init collectibleInit) {
				c.ID = init.id
				c.Pos = init.pos
				c.Kind = init.kind
				c.Amount = init.amount
				c.Age = 0
			},
			poolSize,
		),
		onCollected: onCollected,
		onExpired:   onExpired,
	}
}

// SetPosition moves the collector (typically the player position supplied by
// the host each frame).
func (c *ProximityCollector) SetPosition(pos physics.Vec3) {
	c.pos = pos
}

// Drop creates a collectible at pos and returns its id.
func (c *ProximityCollector) Drop(pos physics.Vec3, kind string, amount int) string {
	item := c.pool.Acquire(collectibleInit{
		id:     uuid.NewString(),
		pos:    pos,
		kind:   kind,
		amount: amount,
	})
	return item.ID
}

// Tick evaluates both destroy predicates for every active collectible.
// Collection wins when both would trigger in the same tick; an item removed
// by one predicate is gone before the other can re-trigger on it.
func (c *ProximityCollector) Tick(delta float64) {
	if delta < 0 {
		delta = 0
	}

	inRange, rest := sequence.From(c.pool.Active()).Partition(func(item *Collectible) bool {
		return physics.Distance(c.pos, item.Pos) < c.cfg.Radius
	})

	for _, item := range inRange {
		if c.credit != nil {
			c.credit(item.Amount)
		}
		collected := CollectedPayload{ID: item.ID, Kind: item.Kind, Amount: item.Amount}
		c.pool.Release(item)
		if c.onCollected != nil {
			c.onCollected(collected)
		}
	}

	for _, item := range rest {
		item.Age += delta
		if item.Age > c.cfg.TTL {
			expired := ExpiredPayload{ID: item.ID, Kind: item.Kind}
			c.pool.Release(item)
			if c.onExpired != nil {
				c.onExpired(expired)
			}
		}
	}
}

// Active is the read-only view of outstanding collectibles.
func (c *ProximityCollector) Active() []*Collectible {
	return c.pool.Active()
}

func (c *ProximityCollector) PoolStats() generic.Stats { return c.pool.Stats() }
