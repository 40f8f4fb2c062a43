package sprite

import "testing"

func TestAlignUp(t *testing.T) {
	tests := []struct {
		in   uint64
		want uint64
	}{
		{0, 0},
		{1, 4},
		{3, 4},
		{4, 4},
		{5, 8},
		{68, 68},
	}
	for _, tt := range tests {
		if got := alignUp(tt.in); got != tt.want {
			t.Errorf("alignUp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBeltChunkRemaining(t *testing.T) {
	c := &beltChunk{size: 100}

	if !c.remaining(100) {
		t.Error("fresh chunk should fit a full-size write")
	}

	c.offset = 68
	if !c.remaining(32) {
		t.Error("aligned offset 68 + 32 fits in 100")
	}
	if c.remaining(36) {
		t.Error("aligned offset 68 + 36 exceeds 100")
	}

	c.offset = 66
	// write cursor aligns up to 68 first
	if c.remaining(36) {
		t.Error("write after alignment would exceed chunk")
	}
}
