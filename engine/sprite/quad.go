package sprite

// QuadVertex is a single corner of the shared unit quad. All sprites are
// instances of this quad, scaled and positioned by their instance transform.
// Size: 16 bytes (position + uv, tightly packed).
type QuadVertex struct {
	Position [2]float32 // offset 0: corner position on the unit quad (8 bytes)
	UV       [2]float32 // offset 8: texture coordinate at this corner (8 bytes)
}

// quadVertices are the four corners of the unit quad, counter-clockwise from
// the origin. V coordinates are flipped on the top edge so textures read
// top-down.
var quadVertices = [4]QuadVertex{
	{Position: [2]float32{0, 0}, UV: [2]float32{0, 1}},
	{Position: [2]float32{1, 0}, UV: [2]float32{1, 1}},
	{Position: [2]float32{1, 1}, UV: [2]float32{1, 0}},
	{Position: [2]float32{0, 1}, UV: [2]float32{0, 0}},
}

// quadIndices split the quad into two counter-clockwise triangles.
var quadIndices = [6]uint16{0, 1, 2, 0, 2, 3}
