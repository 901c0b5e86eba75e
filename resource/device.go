package resource

// BufferUsage is a bitmask describing the ways a buffer may be used on the
// device. Values are backend-defined; the vulkan subpackage uses the Vulkan
// flag values directly.
type BufferUsage uint32

const (
	BufferUsageTransferSrc BufferUsage = 1 << iota
	BufferUsageTransferDst
	BufferUsageUniformTexel
	BufferUsageStorageTexel
	BufferUsageUniform
	BufferUsageStorage
	BufferUsageIndex
	BufferUsageVertex
	BufferUsageIndirect
)

// ImageUsage is a bitmask describing the ways an image may be used on the
// device.
type ImageUsage uint32

const (
	ImageUsageTransferSrc ImageUsage = 1 << iota
	ImageUsageTransferDst
	ImageUsageSampled
	ImageUsageStorage
	ImageUsageColorAttachment
	ImageUsageDepthStencilAttachment
	ImageUsageTransientAttachment
	ImageUsageInputAttachment
)

// Format is a texel format identifier. The constant values follow the Vulkan
// format enumeration so backends based on Vulkan-style drivers can map them
// with a cast; only the formats this layer's consumers have needed so far are
// named here.
type Format int32

const (
	FormatUndefined               Format = 0
	FormatR8G8B8A8UnsignedNorm    Format = 37
	FormatB8G8R8A8UnsignedNorm    Format = 44
	FormatR16G16B16A16SignedFloat Format = 97
	FormatR32G32B32A32SignedFloat Format = 109
	FormatD24UnsignedNormS8UInt   Format = 129
	FormatD32SignedFloat          Format = 126
)

// Tiling selects the memory arrangement of image texels.
type Tiling int32

const (
	TilingOptimal Tiling = iota
	TilingLinear
)

var tilingMapping = make(map[Tiling]string)

func (t Tiling) String() string {
	return tilingMapping[t]
}

func init() {
	tilingMapping[TilingOptimal] = "TilingOptimal"
	tilingMapping[TilingLinear] = "TilingLinear"
}

// ImageType is the dimensionality of an image.
type ImageType int32

const (
	ImageType1D ImageType = iota
	ImageType2D
	ImageType3D
)

var imageTypeMapping = make(map[ImageType]string)

func (t ImageType) String() string {
	return imageTypeMapping[t]
}

func init() {
	imageTypeMapping[ImageType1D] = "ImageType1D"
	imageTypeMapping[ImageType2D] = "ImageType2D"
	imageTypeMapping[ImageType3D] = "ImageType3D"
}

// Extent3D is the size of an image in texels.
type Extent3D struct {
	Width  int
	Height int
	Depth  int
}

// Kind describes the storage shape of an image: dimensionality, extent,
// array layers and sample count.
type Kind struct {
	Type    ImageType
	Extent  Extent3D
	Layers  int
	Samples int
}

// ViewCapabilities is a bitmask of additional ways views of an image may
// reinterpret it.
type ViewCapabilities uint32

const (
	ViewCapabilityMutableFormat ViewCapabilities = 1 << (iota + 3)
	ViewCapabilityCubeArray
	ViewCapability2DArray
)

// MemoryRequirements describe the constraints device memory bound to a
// resource must satisfy, as reported by the device for that resource.
type MemoryRequirements struct {
	// Size is the minimum byte size of a satisfying block.
	Size int
	// Alignment is the required byte alignment of the bind offset. Always a
	// power of two.
	Alignment uint
	// MemoryTypeBits is a bitmask of the device memory types a satisfying
	// block may come from, one bit per type index.
	MemoryTypeBits uint32
}

// Device is the hardware abstraction consumed by a Factory. It creates,
// queries, binds and destroys raw resource handles of the backend's buffer
// type B and image type I, backed by device memory objects of type M.
//
// Raw handles returned from CreateBuffer and CreateImage are unbound and
// cannot be used for device work until memory has been bound to them.
// Destroy methods must accept resources that still have memory bound and
// unbind internally.
type Device[B, I, M any] interface {
	// CreateBuffer creates an unbound buffer of the given byte size and
	// usage. Size and usage are passed to the driver verbatim.
	CreateBuffer(size int, usage BufferUsage) (B, error)
	// CreateImage creates an unbound image from the given descriptors.
	CreateImage(kind Kind, mipLevels int, format Format, tiling Tiling, usage ImageUsage, viewCaps ViewCapabilities) (I, error)

	// BufferRequirements reports the memory constraints for an unbound buffer.
	BufferRequirements(buffer B) MemoryRequirements
	// ImageRequirements reports the memory constraints for an unbound image.
	ImageRequirements(image I) MemoryRequirements

	// BindBufferMemory binds memory at the given byte offset to the buffer
	// and returns the bound handle.
	BindBufferMemory(memory M, offset int, buffer B) (B, error)
	// BindImageMemory binds memory at the given byte offset to the image
	// and returns the bound handle.
	BindImageMemory(memory M, offset int, image I) (I, error)

	DestroyBuffer(buffer B)
	DestroyImage(image I)
}
