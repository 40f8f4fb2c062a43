package sprite

import "testing"

func TestComputeProjection(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		wantX  float32
		wantY  float32
	}{
		{"landscape", 800, 600, 0.75, 1},
		{"portrait", 600, 800, 1, 0.75},
		{"square", 500, 500, 1, 1},
		{"wide", 1920, 1080, 0.5625, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := computeProjection(tt.width, tt.height)
			if m[0] != tt.wantX || m[4] != tt.wantY {
				t.Errorf("computeProjection(%d, %d) scales (%v, %v), want (%v, %v)",
					tt.width, tt.height, m[0], m[4], tt.wantX, tt.wantY)
			}
			// off-diagonal elements must stay zero
			if m[1] != 0 || m[3] != 0 || m[6] != 0 || m[7] != 0 {
				t.Errorf("projection is not a pure scale: %v", m)
			}
			if m[8] != 1 {
				t.Errorf("homogeneous element = %v, want 1", m[8])
			}
		})
	}
}
