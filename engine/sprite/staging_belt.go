package sprite

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// copyAlign is the required alignment for buffer-to-buffer copy offsets and sizes.
const copyAlign = 4

// beltChunk is a single MapWrite|CopySrc staging buffer. A chunk cycles
// through three states: active (mapped, receiving writes this frame), closed
// (unmapped, referenced by an in-flight submission), and free (mapped again,
// ready for reuse).
type beltChunk struct {
	buffer *wgpu.Buffer
	size   uint64
	offset uint64
}

// remaining reports how many bytes are still writable in the chunk after
// aligning the write cursor.
func (c *beltChunk) remaining(size uint64) bool {
	return alignUp(c.offset)+size <= c.size
}

func alignUp(v uint64) uint64 {
	return (v + copyAlign - 1) &^ (copyAlign - 1)
}

// stagingBelt pipelines CPU-to-GPU uploads through a ring of staging chunks
// so a frame never blocks on a buffer the driver still holds. Writes and
// copies are recorded into the caller's command encoder; Finish unmaps before
// submission and Recall remaps asynchronously once the driver is done.
//
// The belt is single-threaded except for the MapAsync completion callback,
// which may arrive from the device poll thread; the mutex exists solely for
// that hand-off.
type stagingBelt struct {
	chunkSize uint64

	active []*beltChunk

	mu     sync.Mutex
	closed []*beltChunk
	free   []*beltChunk

	total int
}

// newStagingBelt creates a belt whose chunks default to chunkSize bytes.
// Larger single writes allocate a chunk sized to the write.
func newStagingBelt(chunkSize uint64) *stagingBelt {
	return &stagingBelt{chunkSize: chunkSize}
}

// WriteBuffer stages size bytes for upload into target at targetOffset and
// records the CopyBufferToBuffer into encoder. The returned slice is the
// mapped staging window; the caller fills it before Finish. The copy
// executes when the encoder's command buffer is submitted, after any passes
// recorded later in the same encoder have been ordered behind it.
//
// Parameters:
//   - device: the device used to allocate staging chunks
//   - encoder: the command encoder the copy is recorded into
//   - target: the destination buffer
//   - targetOffset: byte offset within target
//   - size: number of bytes to stage (must be > 0 and a multiple of 4)
//
// Returns:
//   - []byte: the mapped staging window of exactly size bytes
//   - error: an error if size is invalid or a chunk could not be allocated
func (b *stagingBelt) WriteBuffer(device *wgpu.Device, encoder *wgpu.CommandEncoder, target *wgpu.Buffer, targetOffset, size uint64) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("staging belt write of zero bytes")
	}
	if size%copyAlign != 0 {
		return nil, fmt.Errorf("staging belt write size %d not %d-byte aligned", size, copyAlign)
	}

	chunk, err := b.acquire(device, size)
	if err != nil {
		return nil, err
	}

	chunk.offset = alignUp(chunk.offset)
	window := chunk.buffer.GetMappedRange(uint(chunk.offset), uint(size))
	encoder.CopyBufferToBuffer(chunk.buffer, chunk.offset, target, targetOffset, size)
	chunk.offset += size

	return window, nil
}

// acquire returns an active chunk with room for size bytes: the current
// active chunk if it fits, a free chunk next, a new allocation last.
func (b *stagingBelt) acquire(device *wgpu.Device, size uint64) (*beltChunk, error) {
	for _, c := range b.active {
		if c.remaining(size) {
			return c, nil
		}
	}

	b.mu.Lock()
	for i, c := range b.free {
		if c.remaining(size) {
			b.free = append(b.free[:i], b.free[i+1:]...)
			b.mu.Unlock()
			b.active = append(b.active, c)
			return c, nil
		}
	}
	total := b.total
	b.mu.Unlock()

	if total >= MaxBatches {
		return nil, fmt.Errorf("staging belt exhausted: %d chunks in flight", total)
	}

	chunkSize := max(b.chunkSize, size)
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Staging Belt Chunk",
		Size:             chunkSize,
		Usage:            wgpu.BufferUsageMapWrite | wgpu.BufferUsageCopySrc,
		MappedAtCreation: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate staging chunk: %w", err)
	}

	c := &beltChunk{buffer: buf, size: chunkSize}
	b.active = append(b.active, c)

	b.mu.Lock()
	b.total++
	b.mu.Unlock()

	return c, nil
}

// Finish unmaps all active chunks so their command buffers can be submitted.
// Must be called after all WriteBuffer calls for the frame and before the
// encoder's command buffer is submitted to the queue.
func (b *stagingBelt) Finish() {
	if len(b.active) == 0 {
		return
	}

	closing := b.active
	b.active = nil

	for _, c := range closing {
		c.buffer.Unmap()
	}

	b.mu.Lock()
	b.closed = append(b.closed, closing...)
	b.mu.Unlock()
}

// Recall starts remapping all closed chunks. Each chunk returns to the free
// list when the driver signals its submission has completed; until then it
// stays off both lists. Call once per frame, before staging new writes.
func (b *stagingBelt) Recall() {
	b.mu.Lock()
	recalling := b.closed
	b.closed = nil
	b.mu.Unlock()

	for _, c := range recalling {
		chunk := c
		chunk.buffer.MapAsync(wgpu.MapModeWrite, 0, chunk.size, func(status wgpu.BufferMapAsyncStatus) {
			if status != wgpu.BufferMapAsyncStatusSuccess {
				// The chunk is unusable; drop it so a fresh one is allocated.
				b.mu.Lock()
				b.total--
				b.mu.Unlock()
				chunk.buffer.Release()
				return
			}
			chunk.offset = 0
			b.mu.Lock()
			b.free = append(b.free, chunk)
			b.mu.Unlock()
		})
	}
}

// Release destroys all belt chunks. The belt must not be used after Release.
func (b *stagingBelt) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range b.active {
		c.buffer.Release()
	}
	for _, c := range b.closed {
		c.buffer.Release()
	}
	for _, c := range b.free {
		c.buffer.Release()
	}
	b.active, b.closed, b.free = nil, nil, nil
	b.total = 0
}
