// package graphics owns the WGPU instance, adapter, device, queue and surface
// for the engine. It exposes a small frame-oriented API: configure the surface,
// acquire a frame, hand the frame's view to a renderer, then present.
package graphics

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-2d/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are delivered to the display.
type PresentMode int

const (
	// PresentModeUncapped renders frames as fast as possible (wgpu Immediate mode).
	PresentModeUncapped PresentMode = iota
	// PresentModeVSync synchronizes frame delivery with the display refresh rate (wgpu Fifo mode).
	PresentModeVSync
)

type contextImpl struct {
	mu *sync.Mutex

	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode

	// Frame state held between BeginFrame and Present
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

// Context defines the interface for the GPU device and surface layer.
//
// A Context owns the WGPU device, queue and swapchain surface. Renderers
// borrow the device and queue to create their resources, and receive a Frame
// per BeginFrame call to record passes against.
type Context interface {
	// Device returns the WGPU device used to create GPU resources.
	Device() *wgpu.Device

	// Queue returns the WGPU queue used to submit command buffers and buffer writes.
	Queue() *wgpu.Queue

	// SurfaceFormat returns the texture format of the configured surface.
	// ConfigureSurface must have been called at least once.
	//
	// Returns:
	//   - wgpu.TextureFormat: the swapchain texture format
	SurfaceFormat() wgpu.TextureFormat

	// ConfigureSurface (re)configures the swapchain for the given size.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// Takes effect on the next ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the next swapchain texture and wraps it in a Frame.
	// Must be paired with Present after the frame's passes are submitted.
	//
	// Returns:
	//   - *Frame: the acquired frame holding the swapchain texture view
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() (*Frame, error)

	// Present presents the acquired surface texture to the display and releases it.
	// Must be called once per frame after all command buffers for the frame are submitted.
	Present()

	// Release destroys the context's GPU resources. The context must not be
	// used after Release.
	Release()
}

var _ Context = &contextImpl{}

// NewContext creates a graphics context for the given surface descriptor.
// It creates the WGPU instance, surface, adapter, device and queue, panicking
// if any of them cannot be acquired since the engine cannot run without them.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor obtained from the window layer
//   - opts: optional ContextOption configuration functions
//
// Returns:
//   - Context: the initialized graphics context
func NewContext(surfaceDescriptor *wgpu.SurfaceDescriptor, opts ...ContextOption) Context {
	runtime.LockOSThread()
	c := &contextImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.surface = c.instance.CreateSurface(surfaceDescriptor)

	a, err := c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: c.forceFallbackAdapter,
		CompatibleSurface:    c.surface,
	})
	if err != nil {
		panic(err)
	}
	c.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	c.device = d
	c.queue = d.GetQueue()

	if c.pendingPresentMode != nil {
		c.SetPresentMode(*c.pendingPresentMode)
	}

	return c
}

func (c *contextImpl) ConfigureSurface(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	capabilities := c.surface.GetCapabilities(c.adapter)
	c.surfaceFormat = &capabilities.Formats[0]

	c.surface.Configure(c.adapter, c.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *c.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: c.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

func (c *contextImpl) SetPresentMode(mode PresentMode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		c.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		c.presentMode = wgpu.PresentModeImmediate
	}
}

func (c *contextImpl) BeginFrame() (*Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// If a previous frame's surface texture is still held, avoid acquiring
	// another one. This prevents wgpu-native validation errors like
	// "Surface image is already acquired" when frames overlap.
	if c.frameSurface != nil {
		return nil, fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := c.surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, err
	}

	c.frameSurface = surfaceTexture
	c.frameView = view

	return &Frame{View: view}, nil
}

func (c *contextImpl) Present() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// If no frame surface is held, nothing to present.
	if c.frameSurface == nil {
		return
	}

	c.surface.Present()

	if c.frameView != nil {
		c.frameView.Release()
		c.frameView = nil
	}
	if c.frameSurface != nil {
		c.frameSurface.Release()
		c.frameSurface = nil
	}
}

func (c *contextImpl) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frameView != nil {
		c.frameView.Release()
		c.frameView = nil
	}
	if c.frameSurface != nil {
		c.frameSurface.Release()
		c.frameSurface = nil
	}
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}

	common.LogDebug("graphics context released")
}

func (c *contextImpl) Device() *wgpu.Device {
	return c.device
}

func (c *contextImpl) Queue() *wgpu.Queue {
	return c.queue
}

func (c *contextImpl) SurfaceFormat() wgpu.TextureFormat {
	if c.surfaceFormat == nil {
		return wgpu.TextureFormatUndefined
	}
	return *c.surfaceFormat
}
