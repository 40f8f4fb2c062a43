// package atlas packs registered sprite sheet images into a single GPU
// texture and exposes per-sheet coordinate helpers for renderers that address
// sprites by pixel rectangles within their source sheet.
package atlas

// SheetID identifies a registered sprite sheet within an atlas.
// IDs are assigned in registration order starting at 0.
type SheetID int

// Sprite addresses a rectangular region of a registered sheet, in pixels.
// It is a plain value type; cheap to copy and safe to share across goroutines.
type Sprite struct {
	// Sheet is the sheet the sprite's pixels live on.
	Sheet SheetID
	// Position is the top-left corner of the sprite within its sheet, in pixels.
	Position [2]uint32
	// Size is the extent of the sprite within its sheet, in pixels.
	Size [2]uint32
}

// SpriteSheet records where a registered sheet landed inside the packed atlas
// texture and converts sheet-local pixel rectangles to normalized atlas
// coordinates.
type SpriteSheet struct {
	// origin is the top-left corner of this sheet within the atlas, in pixels.
	origin [2]uint32
	// size is the sheet's extent in pixels.
	size [2]uint32
	// atlasSize is the full atlas texture extent in pixels.
	atlasSize [2]uint32
}

// NewSpriteSheet creates a placement record for a sheet of the given size at
// the given origin within an atlas texture.
//
// Parameters:
//   - origin: top-left corner of the sheet within the atlas, in pixels
//   - size: the sheet's extent in pixels
//   - atlasSize: the full atlas texture extent in pixels
//
// Returns:
//   - SpriteSheet: the placement record
func NewSpriteSheet(origin, size, atlasSize [2]uint32) SpriteSheet {
	return SpriteSheet{origin: origin, size: size, atlasSize: atlasSize}
}

// TexCoords converts a sheet-local pixel position to normalized [0, 1] atlas
// texture coordinates.
//
// Parameters:
//   - position: top-left pixel position within this sheet
//
// Returns:
//   - [2]float32: normalized atlas coordinates of that position
func (s *SpriteSheet) TexCoords(position [2]uint32) [2]float32 {
	return [2]float32{
		float32(s.origin[0]+position[0]) / float32(s.atlasSize[0]),
		float32(s.origin[1]+position[1]) / float32(s.atlasSize[1]),
	}
}

// TexDims converts a sheet-local pixel extent to normalized atlas dimensions.
//
// Parameters:
//   - size: extent in pixels
//
// Returns:
//   - [2]float32: the extent as a fraction of the atlas size
func (s *SpriteSheet) TexDims(size [2]uint32) [2]float32 {
	return [2]float32{
		float32(size[0]) / float32(s.atlasSize[0]),
		float32(size[1]) / float32(s.atlasSize[1]),
	}
}

// Size returns the sheet's extent in pixels.
//
// Returns:
//   - [2]uint32: width and height of the sheet
func (s *SpriteSheet) Size() [2]uint32 {
	return s.size
}
