package injector

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/bounce/internal/config"
	"github.com/zeusync/bounce/internal/core/events/bus"
	"github.com/zeusync/bounce/internal/core/observability/log"
	"github.com/zeusync/bounce/internal/core/system"
	"github.com/zeusync/bounce/internal/server"
)

// App is the assembled simulation. Stream is nil when streaming is disabled.
type App struct {
	Config *config.Config
	Logger *log.Logger
	Bus    bus.EventBus
	World  *system.World
	Stream *server.StreamServer
}

// Run drives the world and, if configured, the snapshot stream until ctx is done.
func (a *App) Run(ctx context.Context) error {
	var contacts [3]atomic.Uint64
	kinds := []string{system.EventWrap, system.EventReflect, system.EventObstacle}

	subs := make([]bus.Subscription, 0, len(kinds))
	defer func() {
		for _, s := range subs {
			_ = a.Bus.Unsubscribe(s)
		}
	}()
	for i, kind := range kinds {
		counter := &contacts[i]
		sub, err := a.Bus.Subscribe(kind, func(bus.Event) error {
			counter.Add(1)
			return nil
		})
		if err != nil {
			return err
		}
		subs = append(subs, sub)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.World.Run(gctx, a.Config.Tick) })
	if a.Stream != nil {
		g.Go(func() error { return a.Stream.Run(gctx) })
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	a.Logger.Info("simulation finished",
		log.Uint64("ticks", a.World.Tick()),
		log.Uint64("wraps", contacts[0].Load()),
		log.Uint64("wall_bounces", contacts[1].Load()),
		log.Uint64("paddle_bounces", contacts[2].Load()),
	)
	return err
}
