package sprite

import "github.com/Carmen-Shannon/oxy-2d/common"

// computeProjection builds the projection matrix for the given surface size.
// It applies a nonuniform scale that shrinks the wider axis so a unit square
// stays square regardless of the window's aspect ratio.
func computeProjection(width, height int) common.Mat3 {
	w := float32(width)
	h := float32(height)

	if w < h {
		return common.Scale2(1, w/h)
	}
	return common.Scale2(h/w, 1)
}
