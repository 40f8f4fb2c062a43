package sprite

import (
	"fmt"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-2d/common"
	"github.com/Carmen-Shannon/oxy-2d/engine/atlas"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeSheets serves a single 64x64 sheet at offset (64, 0) inside a 128x64
// atlas, without any GPU resources behind it.
type fakeSheets struct {
	sheet atlas.SpriteSheet
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{
		sheet: atlas.NewSpriteSheet([2]uint32{64, 0}, [2]uint32{64, 64}, [2]uint32{128, 64}),
	}
}

func (f *fakeSheets) Sheet(id atlas.SheetID) (*atlas.SpriteSheet, error) {
	if id != 0 {
		return nil, fmt.Errorf("unknown sheet id %d", id)
	}
	return &f.sheet, nil
}

func (f *fakeSheets) BindGroup() *wgpu.BindGroup             { return nil }
func (f *fakeSheets) BindGroupLayout() *wgpu.BindGroupLayout { return nil }

func newTestRenderer(capacity int) *spriteRenderer {
	return &spriteRenderer{
		sheets:     newFakeSheets(),
		queue:      newInstanceQueue(capacity),
		projection: computeProjection(500, 500),
	}
}

func TestDrawQueuesInstances(t *testing.T) {
	r := newTestRenderer(10)

	s := atlas.Sprite{Sheet: 0, Position: [2]uint32{16, 16}, Size: [2]uint32{32, 32}}
	for i := 0; i < 3; i++ {
		err := r.Draw(s, DrawParams{Size: [2]float32{1, 1}, Depth: float32(i) * 0.1})
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
	}

	if r.Queued() != 3 {
		t.Fatalf("queue holds %d instances, want 3", r.Queued())
	}
	for i, inst := range r.queue.instances {
		if inst.ZIndex != float32(i)*0.1 {
			t.Errorf("instance %d has depth %v, want %v (issue order not preserved)", i, inst.ZIndex, float32(i)*0.1)
		}
	}
}

func TestDrawUnknownSheet(t *testing.T) {
	r := newTestRenderer(10)

	err := r.Draw(atlas.Sprite{Sheet: 7}, DrawParams{})
	if err == nil {
		t.Fatal("expected error for unknown sheet")
	}
	if r.queue.len() != 0 {
		t.Errorf("failed draw queued %d instances, want 0", r.queue.len())
	}
}

func TestDrawQueueFull(t *testing.T) {
	r := newTestRenderer(1)
	s := atlas.Sprite{Sheet: 0, Size: [2]uint32{8, 8}}

	if err := r.Draw(s, DrawParams{}); err != nil {
		t.Fatalf("first draw: %v", err)
	}
	if err := r.Draw(s, DrawParams{}); err == nil {
		t.Error("expected error drawing past queue capacity")
	}
}

func TestSubmitEmptyQueueIsNoOp(t *testing.T) {
	// device is nil: any GPU work would panic, proving the early return
	r := newTestRenderer(10)
	if err := r.Submit(nil); err != nil {
		t.Errorf("empty submit: %v", err)
	}
}

func TestBuildInstanceTexCoords(t *testing.T) {
	sheets := newFakeSheets()
	sheet, _ := sheets.Sheet(0)

	s := atlas.Sprite{Sheet: 0, Position: [2]uint32{16, 32}, Size: [2]uint32{32, 16}}
	inst := buildInstance(sheet, common.Identity3(), s, DrawParams{})

	// position (16, 32) on a sheet at atlas offset (64, 0) in a 128x64 atlas
	if inst.TexPos != [2]float32{0.625, 0.5} {
		t.Errorf("TexPos = %v, want (0.625, 0.5)", inst.TexPos)
	}
	if inst.TexDims != [2]float32{0.25, 0.25} {
		t.Errorf("TexDims = %v, want (0.25, 0.25)", inst.TexDims)
	}
}

func TestBuildInstanceDefaultTint(t *testing.T) {
	sheets := newFakeSheets()
	sheet, _ := sheets.Sheet(0)

	inst := buildInstance(sheet, common.Identity3(), atlas.Sprite{}, DrawParams{})
	if inst.Tint != (common.Color3{1, 1, 1}) {
		t.Errorf("zero-value tint = %v, want white", inst.Tint)
	}

	inst = buildInstance(sheet, common.Identity3(), atlas.Sprite{}, DrawParams{Tint: common.Color3{0.5, 0.25, 1}})
	if inst.Tint != (common.Color3{0.5, 0.25, 1}) {
		t.Errorf("explicit tint = %v, want (0.5, 0.25, 1)", inst.Tint)
	}
}

func TestBuildInstanceAppliesProjection(t *testing.T) {
	sheets := newFakeSheets()
	sheet, _ := sheets.Sheet(0)

	projection := computeProjection(800, 600) // scales x by 0.75
	params := DrawParams{Position: [2]float32{0.4, 0.2}, Size: [2]float32{1, 1}}
	inst := buildInstance(sheet, projection, atlas.Sprite{}, params)

	// quad origin corner: model places it at (0.4, 0.2), projection scales x
	x := inst.Transform[0]*0 + inst.Transform[3]*0 + inst.Transform[6]
	y := inst.Transform[1]*0 + inst.Transform[4]*0 + inst.Transform[7]
	if math.Abs(float64(x-0.3)) > 1e-5 || math.Abs(float64(y-0.2)) > 1e-5 {
		t.Errorf("projected origin corner = (%v, %v), want (0.3, 0.2)", x, y)
	}
}

func TestBuildInstanceCustomTransform(t *testing.T) {
	sheets := newFakeSheets()
	sheet, _ := sheets.Sheet(0)

	// x mirror with a shear term, nothing BuildSpriteTransform can produce
	shear := common.Mat3{-1, 0, 0, 0.5, 1, 0, 0.2, 0.3, 1}
	params := DrawParams{
		Transform: shear,
		// placement fields must be ignored when Transform is set
		Position: [2]float32{9, 9},
		Size:     [2]float32{2, 2},
		Rotation: 1,
	}

	inst := buildInstance(sheet, common.Identity3(), atlas.Sprite{}, params)
	if inst.Transform != shear {
		t.Errorf("transform = %v, want the supplied model matrix %v", inst.Transform, shear)
	}

	projection := computeProjection(800, 600)
	inst = buildInstance(sheet, projection, atlas.Sprite{}, params)
	if inst.Transform != common.Mul3(projection, shear) {
		t.Errorf("projected transform = %v, want projection * model", inst.Transform)
	}
}

func TestDrawUsesCurrentProjection(t *testing.T) {
	// a resize recomputes the projection; draws after it must pick it up
	r := newTestRenderer(10)
	before := r.projection

	r.projection = computeProjection(800, 600)
	if r.projection == before {
		t.Fatal("projection unchanged")
	}

	s := atlas.Sprite{Sheet: 0, Size: [2]uint32{8, 8}}
	if err := r.Draw(s, DrawParams{Position: [2]float32{1, 0}, Size: [2]float32{1, 1}}); err != nil {
		t.Fatalf("draw: %v", err)
	}
	inst := r.queue.instances[0]
	// x scale 0.75 must show up in the composed transform's first column
	if math.Abs(float64(inst.Transform[0]-0.75)) > 1e-5 {
		t.Errorf("transform x scale = %v, want 0.75 from new projection", inst.Transform[0])
	}
}
