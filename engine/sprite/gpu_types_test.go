package sprite

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-2d/common"
)

func TestSpriteInstanceSize(t *testing.T) {
	var inst SpriteInstance
	if inst.Size() != spriteInstanceSize {
		t.Errorf("Size() = %d, want %d", inst.Size(), spriteInstanceSize)
	}
	if len(inst.Marshal()) != spriteInstanceSize {
		t.Errorf("len(Marshal()) = %d, want %d", len(inst.Marshal()), spriteInstanceSize)
	}
}

func TestSpriteInstanceRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		inst SpriteInstance
	}{
		{"zero value", SpriteInstance{}},
		{
			"typical sprite",
			SpriteInstance{
				Transform: common.Mat3{0.75, 0, 0, 0, 1, 0, -0.5, 0.25, 1},
				TexPos:    [2]float32{0.25, 0.5},
				TexDims:   [2]float32{0.125, 0.0625},
				Tint:      common.Color3{1, 0.5, 0.25},
				ZIndex:    0.5,
			},
		},
		{
			"negative depth and max tint",
			SpriteInstance{
				Transform: common.Identity3(),
				Tint:      common.Color3{1, 1, 1},
				ZIndex:    -1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SpriteInstance
			if err := got.Unmarshal(tt.inst.Marshal()); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got != tt.inst {
				t.Errorf("round trip = %+v, want %+v", got, tt.inst)
			}
		})
	}
}

func TestSpriteInstanceUnmarshalShortBuffer(t *testing.T) {
	var inst SpriteInstance
	if err := inst.Unmarshal(make([]byte, 67)); err == nil {
		t.Error("expected error for 67-byte buffer")
	}
}

// pins the wire offsets the vertex attribute table depends on
func TestSpriteInstanceFieldOffsets(t *testing.T) {
	inst := SpriteInstance{
		TexPos:  [2]float32{2, 3},
		TexDims: [2]float32{4, 5},
		Tint:    common.Color3{6, 7, 8},
		ZIndex:  9,
	}
	buf := inst.Marshal()

	at := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
	}

	if at(36) != 2 || at(40) != 3 {
		t.Errorf("TexPos not at offset 36: got %v, %v", at(36), at(40))
	}
	if at(44) != 4 || at(48) != 5 {
		t.Errorf("TexDims not at offset 44: got %v, %v", at(44), at(48))
	}
	if at(52) != 6 || at(56) != 7 || at(60) != 8 {
		t.Errorf("Tint not at offset 52: got %v, %v, %v", at(52), at(56), at(60))
	}
	if at(64) != 9 {
		t.Errorf("ZIndex not at offset 64: got %v", at(64))
	}
}

// the instance buffer upload path bypasses Marshal via SliceToBytes, so the
// in-memory layout must match the wire layout exactly
func TestSpriteInstanceMemoryLayoutMatchesMarshal(t *testing.T) {
	inst := SpriteInstance{
		Transform: common.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9},
		TexPos:    [2]float32{10, 11},
		TexDims:   [2]float32{12, 13},
		Tint:      common.Color3{14, 15, 16},
		ZIndex:    17,
	}

	marshaled := inst.Marshal()
	raw := common.StructToBytes(&inst)

	if len(raw) != len(marshaled) {
		t.Fatalf("in-memory size %d, wire size %d", len(raw), len(marshaled))
	}
	for i := range raw {
		if raw[i] != marshaled[i] {
			t.Fatalf("layout mismatch at byte %d: memory %#x, wire %#x", i, raw[i], marshaled[i])
		}
	}
}
