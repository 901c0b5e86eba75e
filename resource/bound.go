package resource

import (
	"github.com/cockroachdb/errors"
)

// Bound pairs exactly one raw device resource of type T with exactly one
// memory Block of type K, and owns both. The pairing is immutable: the two
// halves are only ever relinquished together, through the Factory destroy
// operation that consumes the handle.
//
// Bound itself satisfies Block[M], so layers that operate on block-like
// inputs (cache maintenance, synchronization barriers) can accept bound
// resources and raw blocks uniformly.
type Bound[T, M any, K Block[M]] struct {
	raw   T
	block K

	id       uint64
	released bool
}

// Raw returns the bound device handle, ready for device work.
func (b *Bound[T, M, K]) Raw() T {
	if b.released {
		panic("attempting to access a resource that has already been destroyed")
	}

	return b.raw
}

// Block returns the memory block backing this resource. The block remains
// owned by the resource; callers may inspect it but must not free it.
func (b *Bound[T, M, K]) Block() K {
	if b.released {
		panic("attempting to access the block of a resource that has already been destroyed")
	}

	return b.block
}

// Memory returns the device memory object this resource's block lives in.
func (b *Bound[T, M, K]) Memory() M {
	return b.Block().Memory()
}

// Range returns the byte range within Memory owned by this resource's block.
func (b *Bound[T, M, K]) Range() Range {
	return b.Block().Range()
}

// release relinquishes both halves of the pairing. The handle is dead
// afterward and any further use panics. Only Factory destroy operations
// call this.
func (b *Bound[T, M, K]) release() (T, K) {
	if b.released {
		panic("attempting to destroy a resource that has already been destroyed")
	}
	b.released = true

	return b.raw, b.block
}

// Validate checks the pairing invariants. It is called through
// memutil.DebugValidate and so only runs in debug builds.
func (b *Bound[T, M, K]) Validate() error {
	if b.released {
		return errors.New("bound resource has already been destroyed")
	}
	if b.block.Range().IsEmpty() {
		return errors.New("bound resource owns an empty memory range")
	}

	return nil
}
