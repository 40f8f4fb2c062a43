package graphics

// ContextOption is a functional option applied to a graphics context during construction via NewContext.
type ContextOption func(*contextImpl)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - ContextOption: a function that applies the present mode option to a context
func WithPresentMode(mode PresentMode) ContextOption {
	return func(c *contextImpl) {
		c.pendingPresentMode = &mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe). Useful for benchmarking CPU vs GPU rendering performance.
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - ContextOption: a function that applies the force software renderer option to a context
func WithForceSoftwareRenderer(force bool) ContextOption {
	return func(c *contextImpl) {
		c.forceFallbackAdapter = force
	}
}
