package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-2d/common"
	"github.com/Carmen-Shannon/oxy-2d/engine/config"
	"github.com/Carmen-Shannon/oxy-2d/engine/graphics"
	"github.com/Carmen-Shannon/oxy-2d/engine/sprite"
	"github.com/Carmen-Shannon/oxy-2d/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// The tick callback will be called at this rate for game logic updates.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithContext sets the graphics context the render loop acquires and presents
// frames through.
//
// Parameters:
//   - ctx: a created graphics context
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithContext(ctx graphics.Context) EngineBuilderOption {
	return func(e *engine) {
		e.ctx = ctx
	}
}

// WithRenderer sets the sprite renderer the render loop submits each frame.
// Renderers created after the engine can be attached later via SetRenderer.
//
// Parameters:
//   - r: the sprite renderer to drive
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r sprite.SpriteRenderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}

// WithConfig applies the engine section of a loaded configuration: tick
// rate, render frame limit, profiling and log level. Window and renderer
// sections are consumed by their own constructors.
//
// Parameters:
//   - cfg: the loaded configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg *config.Config) EngineBuilderOption {
	return func(e *engine) {
		if cfg == nil {
			return
		}
		if cfg.Engine.LogLevel != "" {
			common.SetLogLevel(cfg.Engine.LogLevel)
		}
		if cfg.Engine.TickRate > 0 {
			e.engineTickRate = time.Second / time.Duration(cfg.Engine.TickRate)
		}
		if cfg.Engine.RenderFrameLimit > 0 {
			e.renderFrameLimit = time.Second / time.Duration(cfg.Engine.RenderFrameLimit)
		}
		if cfg.Engine.Profiling {
			e.profilingEnabled = true
		}
	}
}

// WithConfigFile loads a TOML configuration file and applies it as WithConfig
// does. A missing or malformed file is fatal; a config file named explicitly
// is expected to work.
//
// Parameters:
//   - path: the configuration file path
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfigFile(path string) EngineBuilderOption {
	return func(e *engine) {
		cfg, err := config.Load(path)
		if err != nil {
			common.LogFatal("failed to load config: %v", err)
		}
		WithConfig(cfg)(e)
	}
}
