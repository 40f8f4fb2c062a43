package common

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func mat3Near(a, b Mat3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > epsilon {
			return false
		}
	}
	return true
}

// applies m to the homogeneous point (x, y, 1)
func transformPoint(m Mat3, x, y float32) (float32, float32) {
	px := m[0]*x + m[3]*y + m[6]
	py := m[1]*x + m[4]*y + m[7]
	return px, py
}

func TestMul3Identity(t *testing.T) {
	m := Mat3{2, 0, 0, 0, 3, 0, 5, 7, 1}
	if got := Mul3(Identity3(), m); !mat3Near(got, m) {
		t.Errorf("I*m = %v, want %v", got, m)
	}
	if got := Mul3(m, Identity3()); !mat3Near(got, m) {
		t.Errorf("m*I = %v, want %v", got, m)
	}
}

func TestMul3Order(t *testing.T) {
	// translate-then-scale differs from scale-then-translate
	ts := Mul3(Scale2(2, 2), Translation2(1, 0))
	x, y := transformPoint(ts, 0, 0)
	if x != 2 || y != 0 {
		t.Errorf("scale*translate applied to origin = (%v, %v), want (2, 0)", x, y)
	}

	st := Mul3(Translation2(1, 0), Scale2(2, 2))
	x, y = transformPoint(st, 0, 0)
	if x != 1 || y != 0 {
		t.Errorf("translate*scale applied to origin = (%v, %v), want (1, 0)", x, y)
	}
}

func TestRotation2(t *testing.T) {
	tests := []struct {
		name  string
		angle float32
		inX   float32
		inY   float32
		wantX float32
		wantY float32
	}{
		{"quarter turn", math.Pi / 2, 1, 0, 0, 1},
		{"half turn", math.Pi, 1, 0, -1, 0},
		{"zero", 0, 1, 2, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := transformPoint(Rotation2(tt.angle), tt.inX, tt.inY)
			if math.Abs(float64(gotX-tt.wantX)) > epsilon || math.Abs(float64(gotY-tt.wantY)) > epsilon {
				t.Errorf("got (%v, %v), want (%v, %v)", gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestBuildSpriteTransformNoRotation(t *testing.T) {
	// with no rotation the unit quad's corners land at (x, y)..(x+w, y+h)
	m := BuildSpriteTransform(10, 20, 4, 6, 0)

	x, y := transformPoint(m, 0, 0)
	if math.Abs(float64(x-10)) > epsilon || math.Abs(float64(y-20)) > epsilon {
		t.Errorf("origin corner = (%v, %v), want (10, 20)", x, y)
	}

	x, y = transformPoint(m, 1, 1)
	if math.Abs(float64(x-14)) > epsilon || math.Abs(float64(y-26)) > epsilon {
		t.Errorf("far corner = (%v, %v), want (14, 26)", x, y)
	}
}

func TestBuildSpriteTransformRotatesAboutCenter(t *testing.T) {
	// the quad center must be a fixed point of the rotation
	m := BuildSpriteTransform(0, 0, 2, 2, math.Pi/3)
	x, y := transformPoint(m, 0.5, 0.5)
	if math.Abs(float64(x-1)) > epsilon || math.Abs(float64(y-1)) > epsilon {
		t.Errorf("center = (%v, %v), want (1, 1)", x, y)
	}
}

func TestSliceToBytes(t *testing.T) {
	if got := SliceToBytes([]float32(nil)); got != nil {
		t.Errorf("nil slice should convert to nil, got %v", got)
	}

	data := []float32{1, 2, 3}
	b := SliceToBytes(data)
	if len(b) != 12 {
		t.Fatalf("len = %d, want 12", len(b))
	}
	// little-endian check on the first element
	if b[0] != 0 || b[1] != 0 || b[2] != 0x80 || b[3] != 0x3f {
		t.Errorf("first float bytes = %v, want [0 0 128 63]", b[:4])
	}
}
