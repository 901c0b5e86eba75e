package resource

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// FailureKind identifies which stage of a Factory operation failed.
type FailureKind uint32

const (
	// FailureAllocation - the allocator could not produce a satisfying block.
	FailureAllocation FailureKind = iota + 1
	// FailureBufferCreation - the device rejected the buffer descriptors.
	FailureBufferCreation
	// FailureImageCreation - the device rejected the image descriptors.
	FailureImageCreation
	// FailureBind - the device could not bind an allocated block's memory to
	// the resource.
	FailureBind
)

var failureKindMapping = make(map[FailureKind]string)

func (k FailureKind) String() string {
	return failureKindMapping[k]
}

func init() {
	failureKindMapping[FailureAllocation] = "FailureAllocation"
	failureKindMapping[FailureBufferCreation] = "FailureBufferCreation"
	failureKindMapping[FailureImageCreation] = "FailureImageCreation"
	failureKindMapping[FailureBind] = "FailureBind"
}

// Error is the single error type returned from Factory operations. It tags
// the underlying device or allocator failure with the stage it occurred in
// and carries the cause unmodified.
type Error struct {
	kind  FailureKind
	cause error
}

func newError(kind FailureKind, cause error) *Error {
	if cause == nil {
		panic(fmt.Sprintf("attempted to create a %s error with no cause", kind.String()))
	}

	return &Error{
		kind:  kind,
		cause: cause,
	}
}

// Kind reports the stage of the operation that failed.
func (e *Error) Kind() FailureKind {
	return e.kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.kind.String(), e.cause.Error())
}

func (e *Error) Unwrap() error {
	return e.cause
}

// FailureOf extracts the FailureKind from an error returned by a Factory
// operation. It returns false if no *Error is present in err's chain.
func FailureOf(err error) (FailureKind, bool) {
	var factoryErr *Error
	if errors.As(err, &factoryErr) {
		return factoryErr.kind, true
	}

	return 0, false
}
