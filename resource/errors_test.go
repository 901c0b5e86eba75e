package resource

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorTagsAndUnwraps(t *testing.T) {
	cause := errors.New("no compatible memory type")
	err := newError(FailureAllocation, cause)

	require.Equal(t, FailureAllocation, err.Kind())
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "FailureAllocation")
	require.Contains(t, err.Error(), "no compatible memory type")
}

func TestFailureOf(t *testing.T) {
	cause := errors.New("driver rejected descriptors")
	err := newError(FailureImageCreation, cause)

	kind, ok := FailureOf(err)
	require.True(t, ok)
	require.Equal(t, FailureImageCreation, kind)

	// Kind survives additional wrapping up the stack
	wrapped := errors.Wrap(err, "creating shadow map")
	kind, ok = FailureOf(wrapped)
	require.True(t, ok)
	require.Equal(t, FailureImageCreation, kind)

	_, ok = FailureOf(cause)
	require.False(t, ok)

	_, ok = FailureOf(nil)
	require.False(t, ok)
}

func TestNewErrorNilCausePanics(t *testing.T) {
	require.Panics(t, func() {
		_ = newError(FailureBind, nil)
	})
}

func TestFailureKindString(t *testing.T) {
	require.Equal(t, "FailureAllocation", FailureAllocation.String())
	require.Equal(t, "FailureBufferCreation", FailureBufferCreation.String())
	require.Equal(t, "FailureImageCreation", FailureImageCreation.String())
	require.Equal(t, "FailureBind", FailureBind.String())
}
