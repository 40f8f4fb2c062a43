package atlas

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-2d/common"
	"github.com/Carmen-Shannon/oxy-2d/engine/graphics"
	"github.com/cogentcore/webgpu/wgpu"
)

// registryImpl is the implementation of the Registry interface.
type registryImpl struct {
	mu *sync.Mutex

	sources []common.SheetImage

	decodeWorkers int
	sampler       common.SamplerStagingData
}

// Registry collects sprite sheet images and builds them into a single packed
// Atlas texture on the GPU.
//
// Register every sheet the game needs, then call Build once the graphics
// context is up. Sheet decoding runs on a bounded worker pool so large sheet
// sets do not serialize on image decode.
type Registry interface {
	// AddSheet registers a sheet image for inclusion in the atlas.
	//
	// Parameters:
	//   - img: the source image (on-disk path or embedded bytes)
	//
	// Returns:
	//   - SheetID: the id sprites use to address this sheet
	AddSheet(img common.SheetImage) SheetID

	// Build decodes all registered sheets, packs them into one texture,
	// uploads it to the GPU and creates the sampler and bind group.
	//
	// Parameters:
	//   - ctx: the graphics context providing the device and queue
	//
	// Returns:
	//   - Atlas: the packed atlas
	//   - error: an error if no sheets were registered, decoding fails, or GPU resource creation fails
	Build(ctx graphics.Context) (Atlas, error)
}

var _ Registry = &registryImpl{}

// NewRegistry creates an empty sheet registry.
//
// Parameters:
//   - opts: optional RegistryOption configuration functions
//
// Returns:
//   - Registry: the initialized registry
func NewRegistry(opts ...RegistryOption) Registry {
	r := &registryImpl{
		mu:            &sync.Mutex{},
		decodeWorkers: max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *registryImpl) AddSheet(img common.SheetImage) SheetID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sources = append(r.sources, img)
	return SheetID(len(r.sources) - 1)
}

// decodedSheet pairs a registered sheet's pixels with its registration index.
type decodedSheet struct {
	pixels []byte
	width  uint32
	height uint32
}

func (r *registryImpl) Build(ctx graphics.Context) (Atlas, error) {
	r.mu.Lock()
	sources := make([]common.SheetImage, len(r.sources))
	copy(sources, r.sources)
	r.mu.Unlock()

	if len(sources) == 0 {
		return nil, fmt.Errorf("no sheets registered")
	}

	decoded, err := r.decodeAll(sources)
	if err != nil {
		return nil, err
	}

	placements, atlasW, atlasH := packShelves(decoded)

	// Compose all sheets into one RGBA image at their packed positions.
	packed := image.NewRGBA(image.Rect(0, 0, int(atlasW), int(atlasH)))
	for i, d := range decoded {
		src := &image.RGBA{
			Pix:    d.pixels,
			Stride: int(d.width) * 4,
			Rect:   image.Rect(0, 0, int(d.width), int(d.height)),
		}
		dst := image.Rect(
			int(placements[i][0]), int(placements[i][1]),
			int(placements[i][0]+d.width), int(placements[i][1]+d.height),
		)
		draw.Draw(packed, dst, src, image.Point{}, draw.Src)
	}

	common.LogInfo("packed %d sheets into %dx%d atlas", len(decoded), atlasW, atlasH)

	a, err := r.upload(ctx, packed.Pix, atlasW, atlasH)
	if err != nil {
		return nil, err
	}

	a.sheets = make([]SpriteSheet, len(decoded))
	for i, d := range decoded {
		a.sheets[i] = NewSpriteSheet(placements[i], [2]uint32{d.width, d.height}, [2]uint32{atlasW, atlasH})
	}

	return a, nil
}

// decodeAll decodes every registered sheet image on a bounded worker pool.
// Workers are capped so decoding many sheets does not oversubscribe the CPU.
// A WaitGroup provides the completion barrier since pool.Wait() blocks until
// workers idle-exit.
func (r *registryImpl) decodeAll(sources []common.SheetImage) ([]decodedSheet, error) {
	decoded := make([]decodedSheet, len(sources))
	errs := make([]error, len(sources))

	pool := worker.NewDynamicWorkerPool(r.decodeWorkers, len(sources), 1*time.Second)

	var wg sync.WaitGroup
	for i := range sources {
		wg.Add(1)
		idx := i // capture for closure
		src := sources[i]
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()

				pixels, w, h, decodeErr := src.Decode()
				if decodeErr != nil {
					errs[idx] = fmt.Errorf("sheet %d (%s): %w", idx, src.Name, decodeErr)
					return nil, decodeErr
				}
				decoded[idx] = decodedSheet{pixels: pixels, width: w, height: h}
				return nil, nil
			},
		})
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return decoded, nil
}

// packShelves places sheets into horizontal shelves, tallest first, and
// returns each sheet's origin (indexed by registration order) plus the final
// atlas extent. The atlas width is a power of two sized so the result stays
// roughly square.
func packShelves(decoded []decodedSheet) ([][2]uint32, uint32, uint32) {
	var widest, totalArea uint32
	for _, d := range decoded {
		if d.width > widest {
			widest = d.width
		}
		totalArea += d.width * d.height
	}
	side := uint32(math.Ceil(math.Sqrt(float64(totalArea))))
	atlasW := nextPow2(max(widest, side))

	order := make([]int, len(decoded))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return decoded[order[a]].height > decoded[order[b]].height
	})

	placements := make([][2]uint32, len(decoded))
	var cursorX, shelfY, shelfH uint32
	for _, idx := range order {
		d := decoded[idx]
		if cursorX+d.width > atlasW {
			shelfY += shelfH
			cursorX = 0
			shelfH = 0
		}
		placements[idx] = [2]uint32{cursorX, shelfY}
		cursorX += d.width
		if d.height > shelfH {
			shelfH = d.height
		}
	}

	return placements, atlasW, shelfY + shelfH
}

func nextPow2(v uint32) uint32 {
	p := uint32(1)
	for p < v {
		p <<= 1
	}
	return p
}

// samplerBindingType derives the bind group layout's sampler type from the
// resolved sampler settings. A sampler with a linear filter bound into a
// non-filtering slot fails device validation at bind group creation.
func samplerBindingType(desc *wgpu.SamplerDescriptor) wgpu.SamplerBindingType {
	if desc.Compare != wgpu.CompareFunctionUndefined {
		return wgpu.SamplerBindingTypeComparison
	}
	if desc.MagFilter == wgpu.FilterModeLinear ||
		desc.MinFilter == wgpu.FilterModeLinear ||
		desc.MipmapFilter == wgpu.MipmapFilterModeLinear {
		return wgpu.SamplerBindingTypeFiltering
	}
	return wgpu.SamplerBindingTypeNonFiltering
}

// upload creates the atlas texture, sampler, bind group layout and bind group.
func (r *registryImpl) upload(ctx graphics.Context, pixels []byte, width, height uint32) (*atlasImpl, error) {
	device := ctx.Device()

	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Sprite Atlas Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	err = ctx.Queue().WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)
	if err != nil {
		tex.Release()
		return nil, err
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}

	samplerDesc := &wgpu.SamplerDescriptor{
		Label:         "Sprite Atlas Sampler",
		AddressModeU:  common.Coalesce(r.sampler.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(r.sampler.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(r.sampler.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     common.Coalesce(r.sampler.MagFilter, wgpu.FilterModeNearest),
		MinFilter:     common.Coalesce(r.sampler.MinFilter, wgpu.FilterModeNearest),
		MipmapFilter:  common.Coalesce(r.sampler.MipmapFilter, wgpu.MipmapFilterModeNearest),
		LodMinClamp:   r.sampler.LodMinClamp,
		LodMaxClamp:   common.Coalesce(r.sampler.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(r.sampler.MaxAnisotropy, 1),
		Compare:       r.sampler.Compare,
	}
	samp, err := device.CreateSampler(samplerDesc)
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}

	layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Sprite Atlas Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: samplerBindingType(samplerDesc),
				},
			},
		},
	})
	if err != nil {
		samp.Release()
		view.Release()
		tex.Release()
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Sprite Atlas Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: samp},
		},
	})
	if err != nil {
		layout.Release()
		samp.Release()
		view.Release()
		tex.Release()
		return nil, err
	}

	return &atlasImpl{
		texture:         tex,
		view:            view,
		sampler:         samp,
		bindGroupLayout: layout,
		bindGroup:       bindGroup,
		size:            [2]uint32{width, height},
	}, nil
}
