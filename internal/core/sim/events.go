package sim

// Event types published on the engine bus. Delivery is synchronous, so a
// subscriber always observes these within the tick that produced them.
const (
	EventWaveSpawned        = "wave.spawned"
	EventParticlesCompleted = "particles.completed"
	EventCollected          = "collectible.collected"
	EventExpired            = "collectible.expired"
)

// WaveSpawnedPayload describes one emitted wave.
type WaveSpawnedPayload struct {
	Index   int
	Tier    int
	Members []string
}

// CollectedPayload describes a collectible that transferred its payload.
type CollectedPayload struct {
	ID     string
	Kind   string
	Amount int
}

// ExpiredPayload describes a collectible destroyed by TTL without transfer.
type ExpiredPayload struct {
	ID   string
	Kind string
}
