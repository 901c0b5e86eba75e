package vulkan

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/foundry/resource"
)

// Factory is the resource factory instantiated for vkngwrapper handle types
// and this package's block and request types.
type Factory = resource.Factory[core1_0.Buffer, core1_0.Image, core1_0.DeviceMemory, *Block, AllocationRequest]

// Allocator is the allocator contract a Factory created by NewFactory
// consumes. DedicatedAllocator satisfies it.
type Allocator = resource.Allocator[core1_0.Buffer, core1_0.Image, core1_0.DeviceMemory, *Block, AllocationRequest]

// NewFactory derives the resource creation contract from the provided
// allocator.
func NewFactory(allocator Allocator, options resource.CreateOptions) (*Factory, error) {
	return resource.New[core1_0.Buffer, core1_0.Image, core1_0.DeviceMemory, *Block, AllocationRequest](allocator, options)
}
