package vulkan

import (
	"math"
	"math/bits"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/foundry/resource"
	"golang.org/x/exp/slog"
)

// AllocationRequest is the placement hint consumed by allocators in this
// package: property flags a satisfying memory type must have, and flags it
// would be nice for it to have.
type AllocationRequest struct {
	RequiredFlags  core1_0.MemoryPropertyFlags
	PreferredFlags core1_0.MemoryPropertyFlags
}

// DedicatedAllocator satisfies every allocation with its own DeviceMemory
// object, sized exactly to the request. It performs no suballocation or
// recycling, which makes it suitable for large, long-lived resources and as
// a reference allocator in tests; high-frequency allocation should go
// through a pooling allocator instead, since implementations limit the
// total number of live memory objects (maxMemoryAllocationCount).
type DedicatedAllocator struct {
	logger           *slog.Logger
	memoryProperties *core1_0.PhysicalDeviceMemoryProperties

	allocationCount int64
}

func NewDedicatedAllocator(logger *slog.Logger, physicalDevice core1_0.PhysicalDevice) *DedicatedAllocator {
	if logger == nil {
		logger = slog.Default()
	}

	return &DedicatedAllocator{
		logger:           logger,
		memoryProperties: physicalDevice.MemoryProperties(),
	}
}

func (a *DedicatedAllocator) Alloc(
	device resource.Device[core1_0.Buffer, core1_0.Image, core1_0.DeviceMemory],
	request AllocationRequest,
	requirements resource.MemoryRequirements,
) (*Block, error) {
	a.logger.Debug("DedicatedAllocator::Alloc", slog.Int("Size", requirements.Size))

	vkDevice, ok := device.(*Device)
	if !ok {
		return nil, errors.New("DedicatedAllocator can only allocate against a vulkan.Device")
	}

	memoryTypeIndex, err := a.findMemoryTypeIndex(requirements.MemoryTypeBits, request)
	if err != nil {
		return nil, err
	}

	memory, _, err := vkDevice.device.AllocateMemory(vkDevice.allocationCallbacks, core1_0.MemoryAllocateInfo{
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: memoryTypeIndex,
	})
	if err != nil {
		return nil, err
	}

	atomic.AddInt64(&a.allocationCount, 1)

	return &Block{
		memory:          memory,
		blockRange:      resource.Range{Start: 0, End: requirements.Size},
		memoryTypeIndex: memoryTypeIndex,
	}, nil
}

func (a *DedicatedAllocator) Free(
	device resource.Device[core1_0.Buffer, core1_0.Image, core1_0.DeviceMemory],
	block *Block,
) {
	a.logger.Debug("DedicatedAllocator::Free")

	vkDevice, ok := device.(*Device)
	if !ok {
		panic("DedicatedAllocator can only free against a vulkan.Device")
	}

	block.memory.Free(vkDevice.allocationCallbacks)
	atomic.AddInt64(&a.allocationCount, -1)
}

// AllocationCount reports the number of live DeviceMemory objects this
// allocator currently holds.
func (a *DedicatedAllocator) AllocationCount() int {
	return int(atomic.LoadInt64(&a.allocationCount))
}

// findMemoryTypeIndex picks the cheapest memory type allowed by the
// requirements mask: required flags filter, missing preferred flags cost.
func (a *DedicatedAllocator) findMemoryTypeIndex(memoryTypeBits uint32, request AllocationRequest) (int, error) {
	bestMemoryTypeIndex := -1
	minCost := math.MaxInt

	for memTypeIndex := 0; memTypeIndex < len(a.memoryProperties.MemoryTypes); memTypeIndex++ {
		memTypeBit := uint32(1) << memTypeIndex

		if memTypeBit&memoryTypeBits == 0 {
			// This memory type is banned by the bitmask
			continue
		}

		flags := a.memoryProperties.MemoryTypes[memTypeIndex].PropertyFlags
		if request.RequiredFlags&flags != request.RequiredFlags {
			// This memory type is missing required flags
			continue
		}

		missingPreferredFlags := request.PreferredFlags & ^flags
		cost := bits.OnesCount32(uint32(missingPreferredFlags))
		if cost == 0 {
			return memTypeIndex, nil
		} else if cost < minCost {
			bestMemoryTypeIndex = memTypeIndex
			minCost = cost
		}
	}

	if bestMemoryTypeIndex < 0 {
		return -1, errors.Newf("no device memory type in mask %#x satisfies property flags %s", memoryTypeBits, request.RequiredFlags)
	}

	return bestMemoryTypeIndex, nil
}
