package vulkan

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
	"github.com/vkngwrapper/core/v2/driver"
	"github.com/vkngwrapper/extensions/v2/khr_bind_memory2"
	khr_bind_memory2_shim "github.com/vkngwrapper/extensions/v2/khr_bind_memory2/shim"
	"github.com/vkngwrapper/foundry/resource"
)

// Device adapts a vkngwrapper logical device to the resource.Device
// contract, with core1_0.Buffer, core1_0.Image and core1_0.DeviceMemory as
// the handle types. Descriptor enums in the resource package carry the
// Vulkan numeric values, so mapping them is a cast.
type Device struct {
	device              core1_0.Device
	allocationCallbacks *driver.AllocationCallbacks
	bindMemory2         khr_bind_memory2_shim.Shim
}

// NewDevice wraps a logical device. When the device is Vulkan 1.1+ or has
// khr_bind_memory2 active, memory binding goes through vkBindBufferMemory2/
// vkBindImageMemory2; otherwise the core 1.0 entry points are used.
func NewDevice(device core1_0.Device, allocationCallbacks *driver.AllocationCallbacks) *Device {
	d := &Device{
		device:              device,
		allocationCallbacks: allocationCallbacks,
	}

	device11 := core1_1.PromoteDevice(device)
	if device11 != nil {
		d.bindMemory2 = device11
	} else if device.IsDeviceExtensionActive(khr_bind_memory2.ExtensionName) {
		extension := khr_bind_memory2.CreateExtensionFromDevice(device)
		d.bindMemory2 = khr_bind_memory2_shim.NewShim(device, extension)
	}

	return d
}

func (d *Device) CreateBuffer(size int, usage resource.BufferUsage) (core1_0.Buffer, error) {
	buffer, _, err := d.device.CreateBuffer(d.allocationCallbacks, core1_0.BufferCreateInfo{
		Size:  size,
		Usage: core1_0.BufferUsageFlags(usage),
	})

	return buffer, err
}

func (d *Device) CreateImage(
	kind resource.Kind,
	mipLevels int,
	format resource.Format,
	tiling resource.Tiling,
	usage resource.ImageUsage,
	viewCaps resource.ViewCapabilities,
) (core1_0.Image, error) {
	samples := core1_0.SampleCountFlags(kind.Samples)
	if samples == 0 {
		samples = core1_0.Samples1
	}
	layers := kind.Layers
	if layers == 0 {
		layers = 1
	}

	image, _, err := d.device.CreateImage(d.allocationCallbacks, core1_0.ImageCreateInfo{
		Flags:     core1_0.ImageCreateFlags(viewCaps),
		ImageType: core1_0.ImageType(kind.Type),
		Format:    core1_0.Format(format),
		Extent: core1_0.Extent3D{
			Width:  kind.Extent.Width,
			Height: kind.Extent.Height,
			Depth:  kind.Extent.Depth,
		},
		MipLevels:   mipLevels,
		ArrayLayers: layers,
		Samples:     samples,
		Tiling:      core1_0.ImageTiling(tiling),
		Usage:       core1_0.ImageUsageFlags(usage),
	})

	return image, err
}

func (d *Device) BufferRequirements(buffer core1_0.Buffer) resource.MemoryRequirements {
	return adaptRequirements(buffer.MemoryRequirements())
}

func (d *Device) ImageRequirements(image core1_0.Image) resource.MemoryRequirements {
	return adaptRequirements(image.MemoryRequirements())
}

func adaptRequirements(requirements *core1_0.MemoryRequirements) resource.MemoryRequirements {
	return resource.MemoryRequirements{
		Size:           requirements.Size,
		Alignment:      uint(requirements.Alignment),
		MemoryTypeBits: requirements.MemoryTypeBits,
	}
}

func (d *Device) BindBufferMemory(memory core1_0.DeviceMemory, offset int, buffer core1_0.Buffer) (core1_0.Buffer, error) {
	if d.bindMemory2 != nil {
		_, err := d.bindMemory2.BindBufferMemory2([]core1_1.BindBufferMemoryInfo{
			{
				Buffer:       buffer,
				Memory:       memory,
				MemoryOffset: offset,
			},
		})
		return buffer, err
	}

	_, err := buffer.BindBufferMemory(memory, offset)
	return buffer, err
}

func (d *Device) BindImageMemory(memory core1_0.DeviceMemory, offset int, image core1_0.Image) (core1_0.Image, error) {
	if d.bindMemory2 != nil {
		_, err := d.bindMemory2.BindImageMemory2([]core1_1.BindImageMemoryInfo{
			{
				Image:        image,
				Memory:       memory,
				MemoryOffset: uint64(offset),
			},
		})
		return image, err
	}

	_, err := image.BindImageMemory(memory, offset)
	return image, err
}

func (d *Device) DestroyBuffer(buffer core1_0.Buffer) {
	buffer.Destroy(d.allocationCallbacks)
}

func (d *Device) DestroyImage(image core1_0.Image) {
	image.Destroy(d.allocationCallbacks)
}
