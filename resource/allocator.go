package resource

// Allocator is the pluggable memory strategy consumed by a Factory. It
// produces and recycles blocks of type K satisfying device-reported memory
// requirements, under an allocator-specific placement request of type R.
//
// The request value is opaque to this layer and is passed through to Alloc
// unmodified; it lets the allocator weigh caller intent alongside the
// hardware-mandated requirements when choosing a placement.
//
// Alloc and Free require exclusive access to the allocator for the duration
// of the call. Neither this interface nor Factory serializes concurrent
// callers; that is the caller's responsibility if an allocator is shared
// between goroutines.
type Allocator[B, I, M any, K Block[M], R any] interface {
	// Alloc produces a block satisfying the given requirements, using the
	// device for any backing memory it needs to acquire.
	Alloc(device Device[B, I, M], request R, requirements MemoryRequirements) (K, error)
	// Free returns a block produced by Alloc to the allocator. The block
	// must no longer have any resource bound to its memory range.
	Free(device Device[B, I, M], block K)
}
