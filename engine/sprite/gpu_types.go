// package sprite implements the batched 2D sprite renderer: a bounded
// instance queue filled by Draw calls, flushed each frame through a staging
// belt into a single depth-tested, alpha-blended instanced draw.
package sprite

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-2d/common"
)

// SpriteShaderSource is the canonical WGSL source for the sprite pipeline.
// The VertexInput and InstanceInput structs match QuadVertex and
// SpriteInstance layouts exactly.
//
//go:embed assets/sprite.wgsl
var SpriteShaderSource string

// SpriteInstance is the GPU-aligned representation of a single queued sprite.
// Matches the WGSL InstanceInput struct layout exactly (see SpriteShaderSource).
// Size: 68 bytes (17 float32, tightly packed).
type SpriteInstance struct {
	Transform common.Mat3   // offset  0: projection * world transform, column-major 3x3 (36 bytes)
	TexPos    [2]float32    // offset 36: sprite origin in normalized atlas coordinates (8 bytes)
	TexDims   [2]float32    // offset 44: sprite extent in normalized atlas coordinates (8 bytes)
	Tint      common.Color3 // offset 52: RGB multiplier applied to sampled color (12 bytes)
	ZIndex    float32       // offset 64: depth value in [0, 1], smaller draws in front (4 bytes)
}

// Size returns the size of the SpriteInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (s *SpriteInstance) Size() int {
	return int(unsafe.Sizeof(*s))
}

// Marshal serializes the SpriteInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 68-byte buffer ready for GPU upload.
func (s *SpriteInstance) Marshal() []byte {
	buf := make([]byte, 68)
	for i := 0; i < 9; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(s.Transform[i]))
	}
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(s.TexPos[0]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(s.TexPos[1]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(s.TexDims[0]))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(s.TexDims[1]))
	binary.LittleEndian.PutUint32(buf[52:56], math.Float32bits(s.Tint[0]))
	binary.LittleEndian.PutUint32(buf[56:60], math.Float32bits(s.Tint[1]))
	binary.LittleEndian.PutUint32(buf[60:64], math.Float32bits(s.Tint[2]))
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(s.ZIndex))
	return buf
}

// Unmarshal deserializes a SpriteInstance from the given buffer.
//
// Parameters:
//   - buf: source buffer, must hold at least 68 bytes
//
// Returns:
//   - error: an error if the buffer is too short
func (s *SpriteInstance) Unmarshal(buf []byte) error {
	if len(buf) < 68 {
		return fmt.Errorf("buffer too short for SpriteInstance: %d bytes", len(buf))
	}
	for i := 0; i < 9; i++ {
		s.Transform[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
	}
	s.TexPos[0] = math.Float32frombits(binary.LittleEndian.Uint32(buf[36:40]))
	s.TexPos[1] = math.Float32frombits(binary.LittleEndian.Uint32(buf[40:44]))
	s.TexDims[0] = math.Float32frombits(binary.LittleEndian.Uint32(buf[44:48]))
	s.TexDims[1] = math.Float32frombits(binary.LittleEndian.Uint32(buf[48:52]))
	s.Tint[0] = math.Float32frombits(binary.LittleEndian.Uint32(buf[52:56]))
	s.Tint[1] = math.Float32frombits(binary.LittleEndian.Uint32(buf[56:60]))
	s.Tint[2] = math.Float32frombits(binary.LittleEndian.Uint32(buf[60:64]))
	s.ZIndex = math.Float32frombits(binary.LittleEndian.Uint32(buf[64:68]))
	return nil
}
