package resource

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Bound resources satisfy the block contract, so block-shaped code can
// consume them directly.
var _ Block[*testMemory] = &Bound[*testBuffer, *testMemory, *testBlock]{}

func TestBoundDelegatesToBlock(t *testing.T) {
	memory := &testMemory{id: 7}
	block := &testBlock{
		memory:     memory,
		blockRange: Range{Start: 128, End: 640},
	}
	bound := &Bound[*testBuffer, *testMemory, *testBlock]{
		raw:   &testBuffer{},
		block: block,
	}

	require.Same(t, memory, bound.Memory())
	require.Equal(t, Range{Start: 128, End: 640}, bound.Range())
	require.Same(t, block, bound.Block())
	require.Equal(t, 512, bound.Range().Size())
}

func TestBoundValidate(t *testing.T) {
	bound := &Bound[*testBuffer, *testMemory, *testBlock]{
		raw: &testBuffer{},
		block: &testBlock{
			memory:     &testMemory{},
			blockRange: Range{Start: 0, End: 256},
		},
	}
	require.NoError(t, bound.Validate())

	bound.block.blockRange = Range{Start: 256, End: 256}
	require.Error(t, bound.Validate())

	bound.block.blockRange = Range{Start: 0, End: 256}
	bound.released = true
	require.Error(t, bound.Validate())
}

func TestRange(t *testing.T) {
	require.True(t, Range{}.IsEmpty())
	require.True(t, Range{Start: 10, End: 10}.IsEmpty())
	require.False(t, Range{Start: 10, End: 11}.IsEmpty())
	require.Equal(t, 0, Range{Start: 5, End: 5}.Size())
	require.Equal(t, 100, Range{Start: 28, End: 128}.Size())
}
