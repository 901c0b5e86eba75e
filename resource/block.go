package resource

// Range identifies a contiguous byte range [Start,End) within some larger
// memory object.
type Range struct {
	Start int
	End   int
}

// Size returns the number of bytes covered by the range.
func (r Range) Size() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Block represents ownership of a contiguous byte range within a larger
// device memory allocation. The memory type M is the backend's device
// memory handle.
//
// Blocks are produced and recycled exclusively by an Allocator. A Block
// handed to a Factory create operation belongs to the resulting Bound
// resource until a matching destroy operation releases it.
type Block[M any] interface {
	// Memory returns the device memory object this block is a sub-range of.
	Memory() M
	// Range returns the byte range within Memory owned by this block.
	Range() Range
}
