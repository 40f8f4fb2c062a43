package sprite

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// quadVertexLayout describes the shared quad corners at buffer slot 0.
// Locations 0-1: position, uv.
var quadVertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: 16,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
	},
}

// instanceVertexLayout describes the per-sprite instance data at buffer
// slot 1. Locations 2-4 carry the 3x3 transform one column at a time since
// WGSL has no matrix vertex attributes; 5-8 carry tex coords, tex dims, tint
// and depth. Offsets pin the SpriteInstance wire format.
var instanceVertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: 68,
	StepMode:    wgpu.VertexStepModeInstance,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 2},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 3},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 24, ShaderLocation: 4},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 36, ShaderLocation: 5},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 44, ShaderLocation: 6},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 52, ShaderLocation: 7},
		{Format: wgpu.VertexFormatFloat32, Offset: 64, ShaderLocation: 8},
	},
}

// newSpritePipeline creates the fixed sprite render pipeline: triangle list
// with counter-clockwise front faces and back-face culling, straight-alpha
// blending over the surface format, and depth testing (Less, depth-write)
// against a Depth32Float target.
func newSpritePipeline(device *wgpu.Device, surfaceFormat wgpu.TextureFormat, atlasLayout *wgpu.BindGroupLayout) (*wgpu.RenderPipeline, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Sprite Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: SpriteShaderSource,
		},
	})
	if err != nil {
		return nil, err
	}
	defer module.Release()

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Sprite Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{atlasLayout},
	})
	if err != nil {
		return nil, err
	}
	defer layout.Release()

	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Sprite Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{quadVertexLayout, instanceVertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format: surfaceFormat,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}
