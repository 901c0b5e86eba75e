package memutil

import "math"

// Statistics is a running count of live bound resources and the memory their
// blocks cover.
type Statistics struct {
	BufferCount int
	ImageCount  int
	BlockBytes  int
}

func (s *Statistics) Clear() {
	s.BufferCount = 0
	s.ImageCount = 0
	s.BlockBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.BufferCount += other.BufferCount
	s.ImageCount += other.ImageCount
	s.BlockBytes += other.BlockBytes
}

// DetailedStatistics additionally tracks the smallest and largest blocks
// seen. Call Clear before accumulating into it so the min/max fields start
// from their identity values.
type DetailedStatistics struct {
	Statistics
	BlockSizeMin int
	BlockSizeMax int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.BlockSizeMin = math.MaxInt
	s.BlockSizeMax = 0
}

// AddBlock folds a single block of the given byte size into the detail
// fields. Callers account for BufferCount/ImageCount themselves.
func (s *DetailedStatistics) AddBlock(size int) {
	s.BlockBytes += size

	if size < s.BlockSizeMin {
		s.BlockSizeMin = size
	}

	if size > s.BlockSizeMax {
		s.BlockSizeMax = size
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)

	if other.BlockSizeMin < s.BlockSizeMin {
		s.BlockSizeMin = other.BlockSizeMin
	}

	if other.BlockSizeMax > s.BlockSizeMax {
		s.BlockSizeMax = other.BlockSizeMax
	}
}
