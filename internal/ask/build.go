package ask

import (
	"github.com/ziggle-dev/clanker-input/internal/config"
	"github.com/ziggle-dev/clanker-input/internal/dispatch"
	"github.com/ziggle-dev/clanker-input/internal/executor"
	"github.com/ziggle-dev/clanker-input/internal/logging"
	"github.com/ziggle-dev/clanker-input/internal/mechanism"
	"github.com/ziggle-dev/clanker-input/internal/metrics"
	"github.com/ziggle-dev/clanker-input/internal/runner"
)

// Options wire a Service. Zero values pick the production defaults.
type Options struct {
	Config   config.Config
	Log      *logging.Logger
	Metrics  *metrics.Metrics
	Runner   runner.Runner
	Console  mechanism.ConsoleOpener
	Platform string // empty means the running host
}

// Build assembles the mechanisms, dispatcher and executor described by the
// configuration.
func Build(opts Options) (*Service, error) {
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	platform := opts.Platform
	if platform == "" {
		platform = dispatch.Current()
	}
	platform = dispatch.Family(platform)

	order := opts.Config.Order(platform)
	if len(order) == 0 {
		order = dispatch.DefaultOrder(platform)
	}
	mechs, err := dispatch.Mechanisms(order, dispatch.Deps{
		Runner:        opts.Runner,
		Console:       opts.Console,
		TerminalStyle: opts.Config.Terminal.Style,
	})
	if err != nil {
		return nil, err
	}
	opts.Log.Debug("input mechanisms", "platform", platform, "order", order)

	d := dispatch.New(platform, mechs, dispatch.WithLogger(opts.Log), dispatch.WithMetrics(opts.Metrics))
	exec := executor.New(executor.Config{
		Title:   opts.Config.Title,
		Timeout: opts.Config.Timeout,
	}, d, opts.Log)

	return New(exec, d, opts.Log, opts.Metrics), nil
}
