package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/bounce/internal/config"
	"github.com/zeusync/bounce/internal/core/events/bus"
	"github.com/zeusync/bounce/internal/core/observability/log"
	"github.com/zeusync/bounce/internal/core/palette"
	"github.com/zeusync/bounce/internal/core/system"
	"github.com/zeusync/bounce/internal/server"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvidePalette,
	ProvideWorld,
	ProvideStream,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg *config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return log.New(level), nil
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

func ProvidePalette(cfg *config.Config) *palette.Palette {
	return palette.NewSeeded(cfg.Seed)
}

func ProvideWorld(cfg *config.Config, b bus.EventBus, logger *log.Logger, pal *palette.Palette) (*system.World, error) {
	return system.NewFromConfig(cfg, b, logger, pal)
}

// ProvideStream returns nil when streaming is disabled.
func ProvideStream(cfg *config.Config, world *system.World, logger *log.Logger) (*server.StreamServer, error) {
	if !cfg.Stream.Enabled {
		return nil, nil
	}
	return server.NewStreamServer(server.Config{
		ListenAddr: cfg.Stream.ListenAddr,
		Path:       cfg.Stream.Path,
		Interval:   cfg.Tick,
	}, world, logger.With(log.String("component", "stream")))
}
