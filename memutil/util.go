package memutil

import (
	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~uint
}

// CheckPow2 returns an error wrapping PowerOfTwoError if number is not a
// power of two. Zero is accepted; device alignments of zero are treated as
// "no constraint" by callers.
func CheckPow2[T Number](number T, name string) error {
	if number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to the nearest multiple of alignment, which must
// be a power of two.
func AlignUp(value int, alignment uint) int {
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

// AlignDown rounds value down to the nearest multiple of alignment, which
// must be a power of two.
func AlignDown(value int, alignment uint) int {
	return value & int(^(alignment - 1))
}

// IsAligned returns true if value is a multiple of alignment, which must be
// a power of two.
func IsAligned(value int, alignment uint) bool {
	if alignment == 0 {
		return true
	}
	return value&(int(alignment)-1) == 0
}
