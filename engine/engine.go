package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-2d/common"
	"github.com/Carmen-Shannon/oxy-2d/engine/graphics"
	"github.com/Carmen-Shannon/oxy-2d/engine/profiler"
	"github.com/Carmen-Shannon/oxy-2d/engine/sprite"
	"github.com/Carmen-Shannon/oxy-2d/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	ctx      graphics.Context
	renderer sprite.SpriteRenderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	// Resize events arrive on the window thread; the render goroutine applies
	// them between frames so surface reconfiguration never races a submit.
	resizeMu      sync.Mutex
	pendingResize *[2]int
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, render loop, and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Context returns the graphics context.
	//
	// Returns:
	//   - graphics.Context: the context, or nil if none was configured
	Context() graphics.Context

	// Renderer returns the sprite renderer driven by the render loop.
	//
	// Returns:
	//   - sprite.SpriteRenderer: the renderer, or nil if none was set
	Renderer() sprite.SpriteRenderer

	// SetRenderer sets the sprite renderer the render loop submits each
	// frame. Must be called before Run; renderers are typically created
	// after the engine since they need a built atlas.
	//
	// Parameters:
	//   - r: the renderer to drive
	SetRenderer(r sprite.SpriteRenderer)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for game logic, physics, input processing, and animation updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame,
	// between BeginFrame and Submit. Issue Draw calls here.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the main engine loop (blocks until window closes).
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Initializes channels and profiler with sensible defaults.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, context, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		running:          false,
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.resizeMu.Lock()
			e.pendingResize = &[2]int{width, height}
			e.resizeMu.Unlock()
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Context() graphics.Context {
	return e.ctx
}

func (e *engine) Renderer() sprite.SpriteRenderer {
	return e.renderer
}

func (e *engine) SetRenderer(r sprite.SpriteRenderer) {
	e.renderer = r
}

func (e *engine) Run() {
	e.running = true
	e.handle()
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the tick and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleTick()
	go e.handleRender()
}

// handleTick runs the fixed-rate game logic loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic
// rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleTick() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own
// goroutine. Each iteration applies any pending resize, acquires a frame,
// runs the render callback to queue sprites, submits the batch and presents.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			common.LogError("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.applyPendingResize()

			if e.ctx != nil {
				frame, err := e.ctx.BeginFrame()
				if err != nil {
					// Swapchain acquisition fails transiently during resizes.
					common.LogWarn("failed to acquire frame: %v", err)
					continue
				}

				if e.renderCallback != nil {
					e.renderCallback(dt)
				}

				if e.renderer != nil {
					if e.profilingEnabled && e.profiler != nil {
						e.profiler.AddSprites(e.renderer.Queued())
					}
					if err := e.renderer.Submit(frame); err != nil {
						common.LogError("sprite submit failed: %v", err)
					}
				}

				e.ctx.Present()
			} else if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// applyPendingResize reconfigures the surface and renderer for the most
// recent resize event, if any arrived since the last frame.
func (e *engine) applyPendingResize() {
	e.resizeMu.Lock()
	pending := e.pendingResize
	e.pendingResize = nil
	e.resizeMu.Unlock()

	if pending == nil {
		return
	}

	width, height := pending[0], pending[1]
	if width == 0 || height == 0 {
		// Minimized; skip until the surface has area again.
		return
	}

	if e.ctx != nil {
		e.ctx.ConfigureSurface(width, height)
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	common.LogDebug("resized surface to %dx%d", width, height)
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if e.running {
		// Send to channel for immediate update in running engine loop
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			// Channel has a pending update, drain and send new value
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		// Engine not running, just update the field
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}
