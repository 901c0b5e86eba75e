package vulkan

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/foundry/resource"
)

// Block is a sub-range of a core1_0.DeviceMemory object, produced by an
// allocator in this package.
type Block struct {
	memory          core1_0.DeviceMemory
	blockRange      resource.Range
	memoryTypeIndex int
}

func (b *Block) Memory() core1_0.DeviceMemory {
	return b.memory
}

func (b *Block) Range() resource.Range {
	return b.blockRange
}

// MemoryTypeIndex reports the device memory type this block was allocated
// from.
func (b *Block) MemoryTypeIndex() int {
	return b.memoryTypeIndex
}
