package sprite

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// depthTarget bundles the depth texture, its view and the comparison sampler
// used by the sprite pass. Recreated whole on every resize.
type depthTarget struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

func newDepthTarget(device *wgpu.Device, width, height int) (*depthTarget, error) {
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Sprite Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, err
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}

	samp, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Sprite Depth Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLessEqual,
		LodMinClamp:   0,
		LodMaxClamp:   100,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}

	return &depthTarget{texture: tex, view: view, sampler: samp}, nil
}

func (d *depthTarget) release() {
	if d == nil {
		return
	}
	if d.sampler != nil {
		d.sampler.Release()
		d.sampler = nil
	}
	if d.view != nil {
		d.view.Release()
		d.view = nil
	}
	if d.texture != nil {
		d.texture.Release()
		d.texture = nil
	}
}
