package sprite

import "github.com/Carmen-Shannon/oxy-2d/common"

// SpriteRendererOption is a functional option applied to a sprite renderer during construction via NewSpriteRenderer.
type SpriteRendererOption func(*spriteRenderer)

// WithClearColor sets the color the frame is cleared to before the sprite
// pass. When not specified, the default is near-black (gray 0.01).
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - SpriteRendererOption: a function that applies the clear color option to a renderer
func WithClearColor(color common.Color3) SpriteRendererOption {
	return func(r *spriteRenderer) {
		r.clearColor = color
	}
}

// WithQueueCapacity sets the per-batch sprite capacity. Draw errors once the
// queue holds this many sprites. When not specified, the default is
// MaxSpritesPerBatch.
//
// Parameters:
//   - capacity: the batch capacity (values < 1 are clamped to 1)
//
// Returns:
//   - SpriteRendererOption: a function that applies the capacity option to a renderer
func WithQueueCapacity(capacity int) SpriteRendererOption {
	return func(r *spriteRenderer) {
		r.queueCapacity = max(capacity, 1)
	}
}

// WithBeltChunkSize sets the staging belt's default chunk size in bytes.
// When not specified, the default holds one full batch of instances.
//
// Parameters:
//   - size: the chunk size in bytes
//
// Returns:
//   - SpriteRendererOption: a function that applies the chunk size option to a renderer
func WithBeltChunkSize(size uint64) SpriteRendererOption {
	return func(r *spriteRenderer) {
		r.beltChunkSize = size
	}
}
