package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/emberline/emberline/internal/config"
	"github.com/emberline/emberline/internal/core/events/bus"
	"github.com/emberline/emberline/internal/core/observability/log"
	"github.com/emberline/emberline/internal/core/physics"
	"github.com/emberline/emberline/internal/core/sim"
	"github.com/emberline/emberline/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	logger := log.New(log.ParseLevel(cfg.Log.Level))
	if err != nil {
		logger.Fatal("load config", log.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopCh
		cancel()
	}()

	eventBus := bus.New()

	ledger := &resourceLedger{}
	engine := sim.NewEngine(cfg, logger, eventBus, ledger.Credit)

	// Demo wiring so consumers see activity without a game on top: every
	// wave gets a spawn flash, every collection gets a pickup burst.
	_, _ = eventBus.Subscribe(sim.EventWaveSpawned, func(bus.Event) error {
		engine.SpawnParticles(sim.PatternExplosion, physics.Vec3{}, sim.Color{R: 255, G: 120}, 24)
		return nil
	})
	_, _ = eventBus.Subscribe(sim.EventCollected, func(ev bus.Event) error {
		p := ev.Data().(sim.CollectedPayload)
		logger.Info("collected",
			log.String("kind", p.Kind),
			log.Int("amount", p.Amount),
			log.Int("ledger_total", ledger.Total()),
		)
		return nil
	})

	hub := server.NewHub(logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Start(gctx, cfg.Server.Host, cfg.Server.Port)
	})
	g.Go(func() error {
		return runLoop(gctx, engine, hub, cfg)
	})

	if err := g.Wait(); err != nil {
		logger.Error("shutdown", log.Error(err))
	}
	logger.Info("stopped", log.Int("ledger_total", ledger.Total()))
}

// runLoop drives the engine at 60Hz with measured wall-clock deltas and
// broadcasts snapshots at the configured rate.
func runLoop(ctx context.Context, engine *sim.Engine, hub *server.Hub, cfg config.Config) error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	snapshotEvery := time.Second / time.Duration(cfg.Server.SnapshotHz)
	last := time.Now()
	var lastSnapshot time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			delta := now.Sub(last).Seconds()
			last = now

			engine.Tick(delta)

			if hub.ClientCount() > 0 && now.Sub(lastSnapshot) >= snapshotEvery {
				lastSnapshot = now
				hub.Broadcast(engine.Snapshot())
			}
		}
	}
}

// resourceLedger is the trivial in-memory ledger behind the collector's
// credit entry point. It is only touched from the engine loop goroutine.
type resourceLedger struct {
	total int
}

func (l *resourceLedger) Credit(amount int) { l.total += amount }
func (l *resourceLedger) Total() int        { return l.total }
