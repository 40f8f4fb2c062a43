package sprite

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-2d/common"
	"github.com/Carmen-Shannon/oxy-2d/engine/atlas"
	"github.com/Carmen-Shannon/oxy-2d/engine/graphics"
	"github.com/cogentcore/webgpu/wgpu"
)

// spriteInstanceSize is the wire size of one SpriteInstance in bytes.
const spriteInstanceSize = 68

// sheetSource is the slice of the atlas API the renderer needs: sheet lookup
// for Draw and the texture bind group for Submit.
type sheetSource interface {
	Sheet(id atlas.SheetID) (*atlas.SpriteSheet, error)
	BindGroup() *wgpu.BindGroup
	BindGroupLayout() *wgpu.BindGroupLayout
}

// DrawParams carries the per-draw placement of a sprite in world space.
//
// Most callers describe placement with Position/Size/Rotation; Transform is
// for the rest (shear, mirroring, custom pivots).
type DrawParams struct {
	// Transform is an optional model matrix mapping the unit quad into world
	// space. When non-zero it is used as-is and Position, Size and Rotation
	// are ignored.
	Transform common.Mat3
	// Position is the sprite's bottom-left corner in world units.
	Position [2]float32
	// Size is the sprite's extent in world units.
	Size [2]float32
	// Rotation is the angle in radians about the sprite's center.
	Rotation float32
	// Tint multiplies the sampled color per channel. The zero value is
	// treated as white (no tint).
	Tint common.Color3
	// Depth is the sprite's depth in [0, 1]; smaller values draw in front.
	Depth float32
}

// spriteRenderer is the implementation of the SpriteRenderer interface.
type spriteRenderer struct {
	device   *wgpu.Device
	gpuQueue *wgpu.Queue

	pipeline      *wgpu.RenderPipeline
	quadVertexBuf *wgpu.Buffer
	quadIndexBuf  *wgpu.Buffer
	instanceBuf   *wgpu.Buffer
	belt          *stagingBelt
	depth         *depthTarget
	sheets        sheetSource
	queue         *instanceQueue
	projection    common.Mat3
	clearColor    common.Color3

	// Pre-creation config collected from builder options
	queueCapacity int
	beltChunkSize uint64
}

// SpriteRenderer batches Draw calls into a single depth-tested, alpha-blended
// instanced draw per Submit.
//
// Draw, Resize and Submit are not safe for concurrent use; the renderer is
// designed to be driven from a single render goroutine. Sprites are drawn
// back-to-front by depth via the depth buffer, so submission order only
// matters for sprites at equal depth.
type SpriteRenderer interface {
	// Draw queues one sprite for the current batch. No GPU work happens
	// until Submit.
	//
	// Parameters:
	//   - s: the atlas sprite to draw (sheet + pixel rectangle)
	//   - params: world-space placement, tint and depth
	//
	// Returns:
	//   - error: an error if the sprite's sheet is unknown or the batch is full
	Draw(s atlas.Sprite, params DrawParams) error

	// Submit flushes all queued sprites into one instanced draw recorded
	// against the given frame's view, then submits the command buffer.
	// With an empty queue Submit is a complete no-op: no encoder is created
	// and the frame is not cleared; whoever composites the frame owns the
	// background in that case.
	//
	// Parameters:
	//   - frame: the acquired frame to render into
	//
	// Returns:
	//   - error: an error if staging or command encoding fails
	Submit(frame *graphics.Frame) error

	// Queued returns the number of sprites currently queued for the next
	// Submit.
	//
	// Returns:
	//   - int: the queued sprite count
	Queued() int

	// Resize updates the projection and recreates the depth target for the
	// new surface size. Must not be called concurrently with Submit.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// Release destroys the renderer's GPU resources. The renderer must not
	// be used after Release.
	Release()
}

var _ SpriteRenderer = &spriteRenderer{}

// NewSpriteRenderer creates a sprite renderer drawing sprites from the given
// atlas. The surface must already be configured at width x height.
//
// Parameters:
//   - ctx: the graphics context providing the device, queue and surface format
//   - a: the packed sprite atlas to sample from
//   - width: the current surface width in pixels
//   - height: the current surface height in pixels
//   - opts: optional SpriteRendererOption configuration functions
//
// Returns:
//   - SpriteRenderer: the initialized renderer
//   - error: an error if GPU resource creation fails
func NewSpriteRenderer(ctx graphics.Context, a atlas.Atlas, width, height int, opts ...SpriteRendererOption) (SpriteRenderer, error) {
	r := &spriteRenderer{
		device:        ctx.Device(),
		gpuQueue:      ctx.Queue(),
		sheets:        a,
		projection:    computeProjection(width, height),
		clearColor:    common.Gray(0.01),
		queueCapacity: MaxSpritesPerBatch,
		beltChunkSize: MaxSpritesPerBatch * spriteInstanceSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.queue = newInstanceQueue(r.queueCapacity)
	r.belt = newStagingBelt(r.beltChunkSize)

	pipeline, err := newSpritePipeline(r.device, ctx.SurfaceFormat(), a.BindGroupLayout())
	if err != nil {
		return nil, fmt.Errorf("failed to create sprite pipeline: %w", err)
	}
	r.pipeline = pipeline

	verts := quadVertices
	r.quadVertexBuf, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Sprite Quad Vertex Buffer",
		Contents: common.SliceToBytes(verts[:]),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create quad vertex buffer: %w", err)
	}

	indices := quadIndices
	r.quadIndexBuf, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Sprite Quad Index Buffer",
		Contents: common.SliceToBytes(indices[:]),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create quad index buffer: %w", err)
	}

	r.instanceBuf, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Sprite Instance Buffer",
		Size:  uint64(MaxBatches) * MaxSpritesPerBatch * spriteInstanceSize,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create instance buffer: %w", err)
	}

	r.depth, err = newDepthTarget(r.device, width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create depth target: %w", err)
	}

	return r, nil
}

func (r *spriteRenderer) Draw(s atlas.Sprite, params DrawParams) error {
	sheet, err := r.sheets.Sheet(s.Sheet)
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return r.queue.push(buildInstance(sheet, r.projection, s, params))
}

// buildInstance composes the GPU instance for one draw: world transform from
// the placement params, projection applied on top, pixel rectangle converted
// to normalized atlas coordinates.
func buildInstance(sheet *atlas.SpriteSheet, projection common.Mat3, s atlas.Sprite, params DrawParams) SpriteInstance {
	model := params.Transform
	if model == (common.Mat3{}) {
		model = common.BuildSpriteTransform(
			params.Position[0], params.Position[1],
			params.Size[0], params.Size[1],
			params.Rotation,
		)
	}
	return SpriteInstance{
		Transform: common.Mul3(projection, model),
		TexPos:    sheet.TexCoords(s.Position),
		TexDims:   sheet.TexDims(s.Size),
		Tint:      common.Coalesce(params.Tint, common.Color3{1, 1, 1}),
		ZIndex:    params.Depth,
	}
}

func (r *spriteRenderer) Queued() int {
	return r.queue.len()
}

func (r *spriteRenderer) Submit(frame *graphics.Frame) error {
	if r.queue.len() == 0 {
		return nil
	}

	instances := r.queue.take()

	// Reclaim staging chunks whose submissions have completed before staging
	// this frame's upload.
	r.belt.Recall()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	byteSize := uint64(len(instances)) * spriteInstanceSize
	window, err := r.belt.WriteBuffer(r.device, encoder, r.instanceBuf, 0, byteSize)
	if err != nil {
		encoder.Release()
		return fmt.Errorf("failed to stage instance data: %w", err)
	}
	copy(window, common.SliceToBytes(instances))
	r.belt.Finish()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       frame.View,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor.WGPU(),
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.sheets.BindGroup(), nil)
	pass.SetVertexBuffer(0, r.quadVertexBuf, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, r.instanceBuf, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.quadIndexBuf, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(len(quadIndices)), uint32(len(instances)), 0, 0, 0)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}

	r.gpuQueue.Submit(commandBuffer)
	commandBuffer.Release()
	encoder.Release()

	return nil
}

func (r *spriteRenderer) Resize(width, height int) {
	r.projection = computeProjection(width, height)

	depth, err := newDepthTarget(r.device, width, height)
	if err != nil {
		// Without a depth target every subsequent pass is invalid.
		panic(fmt.Errorf("failed to recreate depth target: %w", err))
	}
	r.depth.release()
	r.depth = depth
}

func (r *spriteRenderer) Release() {
	r.depth.release()
	r.belt.Release()
	if r.instanceBuf != nil {
		r.instanceBuf.Release()
		r.instanceBuf = nil
	}
	if r.quadIndexBuf != nil {
		r.quadIndexBuf.Release()
		r.quadIndexBuf = nil
	}
	if r.quadVertexBuf != nil {
		r.quadVertexBuf.Release()
		r.quadVertexBuf = nil
	}
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
}
