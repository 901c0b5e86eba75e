package resource

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/foundry/memutil"
	"golang.org/x/exp/slog"
)

// CreateOptions configures a Factory created with New.
type CreateOptions struct {
	// Logger receives debug logging for factory operations and error logging
	// for leak reports. When nil, slog.Default() is used.
	Logger *slog.Logger
	// UseMutex guards the factory's live-resource bookkeeping with a mutex so
	// the statistics methods can be called from multiple goroutines. It does
	// not make create/destroy operations safe for concurrent use - those
	// require exclusive access to the allocator and must be serialized by the
	// caller.
	UseMutex bool
}

// Factory derives the resource creation contract from any Allocator: it
// orchestrates device creation of a raw resource, queries its memory
// requirements, obtains a satisfying block from the allocator, binds the
// block's memory to the resource and packages both into a single Bound
// handle governing both lifetimes.
//
// Type parameters are the backend's buffer, image and memory handle types
// B, I and M, the allocator's block type K and its placement request type R.
// Instantiation is explicit, so the derivation is visible at the call site:
//
//	factory, err := resource.New[vk.Buffer, vk.Image, vk.DeviceMemory, *myBlock, myRequest](alloc, opts)
type Factory[B, I, M any, K Block[M], R any] struct {
	allocator Allocator[B, I, M, K, R]
	logger    *slog.Logger
	registry  *registry
}

// New creates a Factory on top of the provided allocator.
func New[B, I, M any, K Block[M], R any](
	allocator Allocator[B, I, M, K, R],
	options CreateOptions,
) (*Factory[B, I, M, K, R], error) {
	if allocator == nil {
		return nil, errors.New("attempted to create a factory with a nil allocator")
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Factory[B, I, M, K, R]{
		allocator: allocator,
		logger:    logger,
		registry:  newRegistry(options.UseMutex),
	}, nil
}

// blockFit verifies that an allocator-produced block actually satisfies the
// device-reported requirements it was allocated for.
type blockFit[M any, K Block[M]] struct {
	block        K
	requirements MemoryRequirements
}

func (f blockFit[M, K]) Validate() error {
	blockRange := f.block.Range()
	if blockRange.IsEmpty() {
		return errors.Newf("allocator produced a block with an empty range [%d,%d)", blockRange.Start, blockRange.End)
	}
	if blockRange.Size() < f.requirements.Size {
		return errors.Newf("allocator produced a %d-byte block for a resource requiring %d bytes", blockRange.Size(), f.requirements.Size)
	}
	if !memutil.IsAligned(blockRange.Start, f.requirements.Alignment) {
		return errors.Newf("allocator produced a block at offset %d for a resource requiring alignment %d", blockRange.Start, f.requirements.Alignment)
	}

	return nil
}

// CreateBuffer creates a buffer of the given size and usage on the device,
// backed by memory from this factory's allocator. Size and usage are
// forwarded to the device verbatim. The request value is passed through to
// the allocator unmodified.
//
// On success the returned handle is bound and ready for device work, and the
// caller owns it: the matching DestroyBuffer must be called exactly once. On
// failure no resource exists and the returned error tags the stage that
// failed.
func (f *Factory[B, I, M, K, R]) CreateBuffer(
	device Device[B, I, M],
	request R,
	size int,
	usage BufferUsage,
) (*Bound[B, M, K], error) {
	f.logger.Debug("Factory::CreateBuffer", slog.Int("Size", size))

	raw, err := device.CreateBuffer(size, usage)
	if err != nil {
		return nil, newError(FailureBufferCreation, err)
	}

	requirements := device.BufferRequirements(raw)
	memutil.DebugCheckPow2(requirements.Alignment, "MemoryRequirements.Alignment")

	block, err := f.allocator.Alloc(device, request, requirements)
	if err != nil {
		device.DestroyBuffer(raw)
		return nil, newError(FailureAllocation, err)
	}
	memutil.DebugValidate(blockFit[M, K]{block: block, requirements: requirements})

	bound, err := device.BindBufferMemory(block.Memory(), block.Range().Start, raw)
	if err != nil {
		// Resource before block: the allocator must not see this range as
		// recyclable while the buffer still exists on the device.
		device.DestroyBuffer(raw)
		f.allocator.Free(device, block)
		return nil, newError(FailureBind, err)
	}

	return &Bound[B, M, K]{
		raw:   bound,
		block: block,
		id:    f.registry.register(resourceKindBuffer, block.Range()),
	}, nil
}

// CreateImage creates an image from the given descriptors on the device,
// backed by memory from this factory's allocator. The contract is identical
// to CreateBuffer.
func (f *Factory[B, I, M, K, R]) CreateImage(
	device Device[B, I, M],
	request R,
	kind Kind,
	mipLevels int,
	format Format,
	tiling Tiling,
	usage ImageUsage,
	viewCaps ViewCapabilities,
) (*Bound[I, M, K], error) {
	f.logger.Debug("Factory::CreateImage",
		slog.String("Type", kind.Type.String()),
		slog.String("Tiling", tiling.String()),
	)

	raw, err := device.CreateImage(kind, mipLevels, format, tiling, usage, viewCaps)
	if err != nil {
		return nil, newError(FailureImageCreation, err)
	}

	requirements := device.ImageRequirements(raw)
	memutil.DebugCheckPow2(requirements.Alignment, "MemoryRequirements.Alignment")

	block, err := f.allocator.Alloc(device, request, requirements)
	if err != nil {
		device.DestroyImage(raw)
		return nil, newError(FailureAllocation, err)
	}
	memutil.DebugValidate(blockFit[M, K]{block: block, requirements: requirements})

	bound, err := device.BindImageMemory(block.Memory(), block.Range().Start, raw)
	if err != nil {
		// Resource before block, as in CreateBuffer.
		device.DestroyImage(raw)
		f.allocator.Free(device, block)
		return nil, newError(FailureBind, err)
	}

	return &Bound[I, M, K]{
		raw:   bound,
		block: block,
		id:    f.registry.register(resourceKindImage, block.Range()),
	}, nil
}

// DestroyBuffer consumes a buffer created by this factory, destroying the
// device handle and then releasing its block to the allocator, in that
// order. The handle is dead afterward; destroying it a second time panics.
func (f *Factory[B, I, M, K, R]) DestroyBuffer(device Device[B, I, M], buffer *Bound[B, M, K]) {
	f.logger.Debug("Factory::DestroyBuffer")

	if buffer == nil {
		panic("attempting to destroy a nil buffer")
	}

	raw, block := buffer.release()
	device.DestroyBuffer(raw)
	f.allocator.Free(device, block)
	f.registry.unregister(buffer.id)
}

// DestroyImage consumes an image created by this factory. The contract is
// identical to DestroyBuffer.
func (f *Factory[B, I, M, K, R]) DestroyImage(device Device[B, I, M], image *Bound[I, M, K]) {
	f.logger.Debug("Factory::DestroyImage")

	if image == nil {
		panic("attempting to destroy a nil image")
	}

	raw, block := image.release()
	device.DestroyImage(raw)
	f.allocator.Free(device, block)
	f.registry.unregister(image.id)
}

// LiveResourceCount returns the number of resources created by this factory
// that have not yet been destroyed.
func (f *Factory[B, I, M, K, R]) LiveResourceCount() int {
	return f.registry.count()
}

// CalculateStatistics clears stats and folds in every live resource.
func (f *Factory[B, I, M, K, R]) CalculateStatistics(stats *memutil.DetailedStatistics) {
	f.logger.Debug("Factory::CalculateStatistics")

	stats.Clear()
	f.registry.addDetailedStatistics(stats)
}

// BuildStatsString returns a JSON description of every live resource.
func (f *Factory[B, I, M, K, R]) BuildStatsString() string {
	writer := jwriter.NewWriter()
	f.registry.buildStatsString(&writer)

	return string(writer.Bytes())
}

// Destroy verifies that every resource created by this factory has been
// destroyed. If any remain they are logged individually and an error is
// returned; the resources themselves are not touched, since reclaiming them
// requires the device they were created on.
func (f *Factory[B, I, M, K, R]) Destroy() error {
	if f.registry.count() == 0 {
		return nil
	}

	f.registry.visitLive(func(id uint64, kind string, offset, size int) {
		f.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED RESOURCE] resource was never destroyed",
			slog.Uint64("id", id),
			slog.String("type", kind),
			slog.Int("offset", offset),
			slog.Int("size", size),
		)
	})

	return errors.New("some resources were not destroyed before the destruction of this factory!")
}
