package sprite

import "testing"

func TestInstanceQueuePushOrder(t *testing.T) {
	q := newInstanceQueue(10)
	for i := 0; i < 5; i++ {
		if err := q.push(SpriteInstance{ZIndex: float32(i)}); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	got := q.take()
	if len(got) != 5 {
		t.Fatalf("take returned %d instances, want 5", len(got))
	}
	for i, inst := range got {
		if inst.ZIndex != float32(i) {
			t.Errorf("instance %d has ZIndex %v, want %v (order not preserved)", i, inst.ZIndex, i)
		}
	}
}

func TestInstanceQueueCapacity(t *testing.T) {
	q := newInstanceQueue(2)
	if err := q.push(SpriteInstance{}); err != nil {
		t.Fatalf("push 1: %v", err)
	}
	if err := q.push(SpriteInstance{}); err != nil {
		t.Fatalf("push 2: %v", err)
	}
	if err := q.push(SpriteInstance{}); err == nil {
		t.Error("expected error pushing past capacity")
	}
	if q.len() != 2 {
		t.Errorf("len = %d after rejected push, want 2", q.len())
	}
}

func TestInstanceQueueTakeResets(t *testing.T) {
	q := newInstanceQueue(3)
	q.push(SpriteInstance{})
	q.push(SpriteInstance{})

	first := q.take()
	if len(first) != 2 {
		t.Fatalf("first take returned %d, want 2", len(first))
	}
	if q.len() != 0 {
		t.Errorf("len = %d after take, want 0", q.len())
	}

	if len(q.take()) != 0 {
		t.Error("take on empty queue should return nothing")
	}

	// capacity must survive the swap
	for i := 0; i < 3; i++ {
		if err := q.push(SpriteInstance{}); err != nil {
			t.Fatalf("push %d after take: %v", i, err)
		}
	}
	if err := q.push(SpriteInstance{}); err == nil {
		t.Error("expected error pushing past capacity after take")
	}

	// the taken slice must not alias the refilled queue
	if len(first) > 0 {
		first[0].ZIndex = 99
		if q.instances[0].ZIndex == 99 {
			t.Error("taken slice aliases queue storage")
		}
	}
}
