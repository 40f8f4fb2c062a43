// package config loads engine settings from TOML files. All fields are
// optional; zero values fall back to the defaults the engine and window
// builders apply on their own.
package config

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-2d/common"
	"github.com/Carmen-Shannon/oxy-2d/engine/graphics"
	"github.com/Carmen-Shannon/oxy-2d/engine/sprite"
	"github.com/Carmen-Shannon/oxy-2d/engine/window"
	"github.com/pelletier/go-toml/v2"
)

// WindowConfig holds the window settings section.
type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	MinWidth  int    `toml:"min_width"`
	MinHeight int    `toml:"min_height"`
	MaxWidth  int    `toml:"max_width"`
	MaxHeight int    `toml:"max_height"`
}

// EngineConfig holds the engine loop settings section.
type EngineConfig struct {
	// TickRate is the game logic tick rate in ticks per second.
	TickRate float64 `toml:"tick_rate"`
	// RenderFrameLimit caps the render loop in frames per second; 0 = uncapped.
	RenderFrameLimit float64 `toml:"render_frame_limit"`
	// Profiling enables periodic frame statistics logging.
	Profiling bool `toml:"profiling"`
	// LogLevel sets the minimum log level (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

// RendererConfig holds the renderer settings section.
type RendererConfig struct {
	// VSync synchronizes presentation with the display refresh rate.
	VSync bool `toml:"vsync"`
	// ClearColor is the background clear color as normalized RGB.
	ClearColor [3]float32 `toml:"clear_color"`
	// ForceSoftware forces the CPU fallback adapter.
	ForceSoftware bool `toml:"force_software"`
}

// Config is the root of the TOML configuration file.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Engine   EngineConfig   `toml:"engine"`
	Renderer RendererConfig `toml:"renderer"`
}

// Load reads and parses a TOML configuration file.
//
// Parameters:
//   - path: the configuration file path
//
// Returns:
//   - *Config: the parsed configuration
//   - error: an error if the file cannot be read or parsed
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses TOML configuration bytes.
//
// Parameters:
//   - data: raw TOML bytes
//
// Returns:
//   - *Config: the parsed configuration
//   - error: an error if parsing fails
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// WindowOptions converts the window section to window builder options,
// omitting unset (zero) fields so the window defaults apply.
//
// Returns:
//   - []window.WindowBuilderOption: options for window.NewWindow
func (c *Config) WindowOptions() []window.WindowBuilderOption {
	var opts []window.WindowBuilderOption
	if c.Window.Title != "" {
		opts = append(opts, window.WithTitle(c.Window.Title))
	}
	if c.Window.Width > 0 {
		opts = append(opts, window.WithWidth(c.Window.Width))
	}
	if c.Window.Height > 0 {
		opts = append(opts, window.WithHeight(c.Window.Height))
	}
	if c.Window.MinWidth > 0 {
		opts = append(opts, window.WithMinWidth(c.Window.MinWidth))
	}
	if c.Window.MinHeight > 0 {
		opts = append(opts, window.WithMinHeight(c.Window.MinHeight))
	}
	if c.Window.MaxWidth > 0 {
		opts = append(opts, window.WithMaxWidth(c.Window.MaxWidth))
	}
	if c.Window.MaxHeight > 0 {
		opts = append(opts, window.WithMaxHeight(c.Window.MaxHeight))
	}
	return opts
}

// ContextOptions converts the renderer section to graphics context options,
// omitting unset (zero) fields so the context defaults apply.
//
// Returns:
//   - []graphics.ContextOption: options for graphics.NewContext
func (c *Config) ContextOptions() []graphics.ContextOption {
	var opts []graphics.ContextOption
	if c.Renderer.VSync {
		opts = append(opts, graphics.WithPresentMode(graphics.PresentModeVSync))
	}
	if c.Renderer.ForceSoftware {
		opts = append(opts, graphics.WithForceSoftwareRenderer(true))
	}
	return opts
}

// RendererOptions converts the renderer section to sprite renderer options,
// omitting unset (zero) fields so the renderer defaults apply.
//
// Returns:
//   - []sprite.SpriteRendererOption: options for sprite.NewSpriteRenderer
func (c *Config) RendererOptions() []sprite.SpriteRendererOption {
	var opts []sprite.SpriteRendererOption
	if c.Renderer.ClearColor != ([3]float32{}) {
		opts = append(opts, sprite.WithClearColor(common.Color3(c.Renderer.ClearColor)))
	}
	return opts
}
