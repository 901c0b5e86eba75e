package resource

import (
	"github.com/dolthub/swiss"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/foundry/internal/utils"
	"github.com/vkngwrapper/foundry/memutil"
)

type resourceKind byte

const (
	resourceKindBuffer resourceKind = iota + 1
	resourceKindImage
)

var resourceKindMapping = make(map[resourceKind]string)

func (k resourceKind) String() string {
	return resourceKindMapping[k]
}

func init() {
	resourceKindMapping[resourceKindBuffer] = "Buffer"
	resourceKindMapping[resourceKindImage] = "Image"
}

type liveResource struct {
	kind   resourceKind
	offset int
	size   int
}

// registry tracks every bound resource a Factory has created and not yet
// destroyed. Create/destroy traffic is serialized by the caller per the
// Factory contract; the mutex exists so the read-side statistics methods
// can be called concurrently with each other when UseMutex is set.
type registry struct {
	mutex  utils.OptionalRWMutex
	nextID uint64
	live   *swiss.Map[uint64, liveResource]
}

func newRegistry(useMutex bool) *registry {
	return &registry{
		mutex: utils.OptionalRWMutex{UseMutex: useMutex},
		live:  swiss.NewMap[uint64, liveResource](42),
	}
}

func (r *registry) register(kind resourceKind, blockRange Range) uint64 {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.nextID++
	r.live.Put(r.nextID, liveResource{
		kind:   kind,
		offset: blockRange.Start,
		size:   blockRange.Size(),
	})

	return r.nextID
}

func (r *registry) unregister(id uint64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.live.Delete(id)
}

func (r *registry) count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.live.Count()
}

func (r *registry) addDetailedStatistics(stats *memutil.DetailedStatistics) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	r.live.Iter(func(id uint64, res liveResource) bool {
		switch res.kind {
		case resourceKindBuffer:
			stats.BufferCount++
		case resourceKindImage:
			stats.ImageCount++
		}
		stats.AddBlock(res.size)

		return false
	})
}

func (r *registry) buildStatsString(writer *jwriter.Writer) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	obj := writer.Object()

	obj.Name("ResourceCount").Int(r.live.Count())

	arr := obj.Name("Resources").Array()
	r.live.Iter(func(id uint64, res liveResource) bool {
		entry := arr.Object()
		entry.Name("Type").String(res.kind.String())
		entry.Name("Offset").Int(res.offset)
		entry.Name("Size").Int(res.size)
		entry.End()

		return false
	})
	arr.End()

	obj.End()
}

func (r *registry) visitLive(visit func(id uint64, kind string, offset, size int)) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	r.live.Iter(func(id uint64, res liveResource) bool {
		visit(id, res.kind.String(), res.offset, res.size)

		return false
	})
}
