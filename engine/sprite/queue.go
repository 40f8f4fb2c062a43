package sprite

import "fmt"

const (
	// MaxSpritesPerBatch is the number of sprites a single batch can hold.
	MaxSpritesPerBatch = 5000
	// MaxBatches is the number of batches the instance buffer and staging
	// belt are sized for.
	MaxBatches = 100
)

// instanceQueue is the append-only sprite accumulator drained by Submit.
// It is capacity-bounded and never reallocates past its capacity.
type instanceQueue struct {
	instances []SpriteInstance
	capacity  int
}

func newInstanceQueue(capacity int) *instanceQueue {
	return &instanceQueue{
		instances: make([]SpriteInstance, 0, capacity),
		capacity:  capacity,
	}
}

// push appends an instance, erroring once the queue is at capacity.
func (q *instanceQueue) push(inst SpriteInstance) error {
	if len(q.instances) >= q.capacity {
		return fmt.Errorf("sprite queue full: capacity %d reached", q.capacity)
	}
	q.instances = append(q.instances, inst)
	return nil
}

// take returns all queued instances in insertion order and resets the queue
// to empty with its original capacity. The returned slice is owned by the
// caller.
func (q *instanceQueue) take() []SpriteInstance {
	out := q.instances
	q.instances = make([]SpriteInstance, 0, q.capacity)
	return out
}

func (q *instanceQueue) len() int {
	return len(q.instances)
}
