package atlas

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestSpriteSheetTexCoords(t *testing.T) {
	sheet := NewSpriteSheet([2]uint32{64, 32}, [2]uint32{64, 64}, [2]uint32{256, 128})

	tests := []struct {
		name     string
		position [2]uint32
		want     [2]float32
	}{
		{"sheet origin", [2]uint32{0, 0}, [2]float32{0.25, 0.25}},
		{"sprite at offset", [2]uint32{16, 16}, [2]float32{0.3125, 0.375}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sheet.TexCoords(tt.position)
			if got != tt.want {
				t.Errorf("TexCoords(%v) = %v, want %v", tt.position, got, tt.want)
			}
		})
	}
}

func TestSpriteSheetTexDims(t *testing.T) {
	sheet := NewSpriteSheet([2]uint32{0, 0}, [2]uint32{128, 128}, [2]uint32{512, 256})

	got := sheet.TexDims([2]uint32{32, 64})
	want := [2]float32{0.0625, 0.25}
	if got != want {
		t.Errorf("TexDims = %v, want %v", got, want)
	}
}

func TestPackShelvesNoOverlap(t *testing.T) {
	decoded := []decodedSheet{
		{width: 100, height: 40},
		{width: 60, height: 90},
		{width: 200, height: 20},
		{width: 30, height: 30},
	}

	placements, atlasW, atlasH := packShelves(decoded)

	if len(placements) != len(decoded) {
		t.Fatalf("got %d placements, want %d", len(placements), len(decoded))
	}

	type rect struct{ x0, y0, x1, y1 uint32 }
	rects := make([]rect, len(decoded))
	for i, d := range decoded {
		p := placements[i]
		rects[i] = rect{p[0], p[1], p[0] + d.width, p[1] + d.height}
		if rects[i].x1 > atlasW || rects[i].y1 > atlasH {
			t.Errorf("sheet %d at %v exceeds atlas %dx%d", i, p, atlasW, atlasH)
		}
	}

	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			if a.x0 < b.x1 && b.x0 < a.x1 && a.y0 < b.y1 && b.y0 < a.y1 {
				t.Errorf("sheets %d and %d overlap: %v vs %v", i, j, a, b)
			}
		}
	}
}

func TestPackShelvesWidthIsPow2(t *testing.T) {
	decoded := []decodedSheet{{width: 300, height: 300}}
	_, atlasW, _ := packShelves(decoded)
	if atlasW&(atlasW-1) != 0 {
		t.Errorf("atlas width %d is not a power of two", atlasW)
	}
	if atlasW < 300 {
		t.Errorf("atlas width %d cannot hold a 300px sheet", atlasW)
	}
}

func TestSamplerBindingTypeMatchesFilters(t *testing.T) {
	tests := []struct {
		name string
		desc wgpu.SamplerDescriptor
		want wgpu.SamplerBindingType
	}{
		{
			"nearest filters",
			wgpu.SamplerDescriptor{MagFilter: wgpu.FilterModeNearest, MinFilter: wgpu.FilterModeNearest},
			wgpu.SamplerBindingTypeNonFiltering,
		},
		{
			"linear mag filter",
			wgpu.SamplerDescriptor{MagFilter: wgpu.FilterModeLinear, MinFilter: wgpu.FilterModeNearest},
			wgpu.SamplerBindingTypeFiltering,
		},
		{
			"linear min filter",
			wgpu.SamplerDescriptor{MagFilter: wgpu.FilterModeNearest, MinFilter: wgpu.FilterModeLinear},
			wgpu.SamplerBindingTypeFiltering,
		},
		{
			"linear mipmap filter",
			wgpu.SamplerDescriptor{MipmapFilter: wgpu.MipmapFilterModeLinear},
			wgpu.SamplerBindingTypeFiltering,
		},
		{
			"comparison sampler",
			wgpu.SamplerDescriptor{MagFilter: wgpu.FilterModeLinear, Compare: wgpu.CompareFunctionLessEqual},
			wgpu.SamplerBindingTypeComparison,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := samplerBindingType(&tt.desc); got != tt.want {
				t.Errorf("samplerBindingType = %v, want %v", got, tt.want)
			}
		})
	}
}
