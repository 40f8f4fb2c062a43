package graphics

import "github.com/cogentcore/webgpu/wgpu"

// Frame represents an acquired swapchain texture for a single frame.
// It is valid from a BeginFrame call until the matching Present, after which
// the view is released and must not be used.
type Frame struct {
	// View is the swapchain texture view renderers attach their color output to.
	View *wgpu.TextureView
}
