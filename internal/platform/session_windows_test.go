//go:build windows

package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionChangeMapping(t *testing.T) {
	locked, ok := sessionChange(wtsSessionLock)
	require.True(t, ok)
	require.True(t, locked)

	locked, ok = sessionChange(wtsSessionUnlock)
	require.True(t, ok)
	require.False(t, locked)

	// Console connect is not a lock transition.
	_, ok = sessionChange(0x1)
	require.False(t, ok)
}
