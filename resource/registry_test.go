package resource

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/foundry/memutil"
)

func TestRegistryRegisterUnregister(t *testing.T) {
	reg := newRegistry(false)
	require.Equal(t, 0, reg.count())

	bufferID := reg.register(resourceKindBuffer, Range{Start: 0, End: 1024})
	imageID := reg.register(resourceKindImage, Range{Start: 1024, End: 5120})
	require.Equal(t, 2, reg.count())
	require.NotEqual(t, bufferID, imageID)

	reg.unregister(bufferID)
	require.Equal(t, 1, reg.count())

	reg.unregister(imageID)
	require.Equal(t, 0, reg.count())
}

func TestRegistryDetailedStatistics(t *testing.T) {
	reg := newRegistry(false)
	reg.register(resourceKindBuffer, Range{Start: 0, End: 256})
	reg.register(resourceKindBuffer, Range{Start: 256, End: 2304})
	reg.register(resourceKindImage, Range{Start: 0, End: 4096})

	var stats memutil.DetailedStatistics
	stats.Clear()
	reg.addDetailedStatistics(&stats)

	require.Equal(t, 2, stats.BufferCount)
	require.Equal(t, 1, stats.ImageCount)
	require.Equal(t, 256+2048+4096, stats.BlockBytes)
	require.Equal(t, 256, stats.BlockSizeMin)
	require.Equal(t, 4096, stats.BlockSizeMax)
}

func TestRegistryStatsString(t *testing.T) {
	device, _, factory := readyFactory(t)

	buffer, err := factory.CreateBuffer(device, testRequest{}, 512, BufferUsageVertex)
	require.NoError(t, err)

	statsString := factory.BuildStatsString()

	var stats struct {
		ResourceCount int
		Resources     []struct {
			Type   string
			Offset int
			Size   int
		}
	}
	require.NoError(t, json.Unmarshal([]byte(statsString), &stats))
	require.Equal(t, 1, stats.ResourceCount)
	require.Len(t, stats.Resources, 1)
	require.Equal(t, "Buffer", stats.Resources[0].Type)
	require.Equal(t, 0, stats.Resources[0].Offset)
	require.Equal(t, 1024, stats.Resources[0].Size)

	factory.DestroyBuffer(device, buffer)
}

func TestFactoryCalculateStatistics(t *testing.T) {
	device, _, factory := readyFactory(t)

	buffer, err := factory.CreateBuffer(device, testRequest{}, 512, BufferUsageVertex)
	require.NoError(t, err)
	image, err := factory.CreateImage(device, testRequest{},
		Kind{Type: ImageType2D, Extent: Extent3D{Width: 64, Height: 64, Depth: 1}},
		1, FormatR8G8B8A8UnsignedNorm, TilingOptimal, ImageUsageSampled, 0)
	require.NoError(t, err)

	var stats memutil.DetailedStatistics
	factory.CalculateStatistics(&stats)
	require.Equal(t, 1, stats.BufferCount)
	require.Equal(t, 1, stats.ImageCount)
	require.Equal(t, 1024+4096, stats.BlockBytes)

	factory.DestroyBuffer(device, buffer)
	factory.DestroyImage(device, image)

	factory.CalculateStatistics(&stats)
	require.Equal(t, 0, stats.BufferCount)
	require.Equal(t, 0, stats.ImageCount)
	require.Equal(t, 0, stats.BlockBytes)
}
