package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatsWithAndWithoutTid(t *testing.T) {
	noTid := New("Spawn", CodeCapacity, "no free thread id")
	assert.Contains(t, noTid.Error(), "Spawn")
	assert.NotContains(t, noTid.Error(), "tid=")

	withTid := NewForThread("Block", 3, CodeNoSuchThread, "no such thread")
	assert.Contains(t, withTid.Error(), "tid=3")
}

func TestIsCodeMatchesByCode(t *testing.T) {
	err := NewForThread("Sleep", 1, CodeInvalidArgument, "numQuantums must be positive")
	assert.True(t, IsCode(err, CodeInvalidArgument))
	assert.False(t, IsCode(err, CodeNoSuchThread))
}

func TestErrorsIsComparesSentinelByCode(t *testing.T) {
	sentinel := New("", CodeHostFailure, "")
	wrapped := Wrap("Init", errors.New("setitimer failed"))
	assert.True(t, errors.Is(wrapped, sentinel))
}

func TestWrapNilReturnsNil(t *testing.T) {
	require.Nil(t, Wrap("Init", nil))
}

func TestUnwrapReturnsInner(t *testing.T) {
	inner := errors.New("boom")
	wrapped := Wrap("Init", inner)
	assert.Same(t, inner, errors.Unwrap(wrapped))
}
