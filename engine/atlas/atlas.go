package atlas

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// atlasImpl is the implementation of the Atlas interface.
type atlasImpl struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler

	bindGroupLayout *wgpu.BindGroupLayout
	bindGroup       *wgpu.BindGroup

	sheets []SpriteSheet
	size   [2]uint32
}

// Atlas is a packed sprite sheet texture living on the GPU, together with the
// bind group renderers attach to sample it.
//
// An Atlas is immutable once built; register all sheets on a Registry up
// front, then Build. Lookups and coordinate conversion are read-only and safe
// to call from any goroutine.
type Atlas interface {
	// Sheet retrieves the placement record for a registered sheet.
	//
	// Parameters:
	//   - id: the SheetID returned by Registry.AddSheet
	//
	// Returns:
	//   - *SpriteSheet: the sheet's placement within the atlas
	//   - error: an error if the id was never registered
	Sheet(id SheetID) (*SpriteSheet, error)

	// BindGroup returns the bind group exposing the atlas texture view at
	// binding 0 and its sampler at binding 1.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created with,
	// for use in pipeline layout creation.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Size returns the packed atlas texture extent in pixels.
	//
	// Returns:
	//   - [2]uint32: width and height of the atlas texture
	Size() [2]uint32

	// Release destroys the atlas GPU resources. The atlas must not be used
	// after Release.
	Release()
}

var _ Atlas = &atlasImpl{}

func (a *atlasImpl) Sheet(id SheetID) (*SpriteSheet, error) {
	if int(id) < 0 || int(id) >= len(a.sheets) {
		return nil, fmt.Errorf("unknown sheet id %d", id)
	}
	return &a.sheets[id], nil
}

func (a *atlasImpl) BindGroup() *wgpu.BindGroup {
	return a.bindGroup
}

func (a *atlasImpl) BindGroupLayout() *wgpu.BindGroupLayout {
	return a.bindGroupLayout
}

func (a *atlasImpl) Size() [2]uint32 {
	return a.size
}

func (a *atlasImpl) Release() {
	if a.bindGroup != nil {
		a.bindGroup.Release()
		a.bindGroup = nil
	}
	if a.bindGroupLayout != nil {
		a.bindGroupLayout.Release()
		a.bindGroupLayout = nil
	}
	if a.sampler != nil {
		a.sampler.Release()
		a.sampler = nil
	}
	if a.view != nil {
		a.view.Release()
		a.view = nil
	}
	if a.texture != nil {
		a.texture.Release()
		a.texture = nil
	}
}
