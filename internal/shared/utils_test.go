package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWipeByteArray(t *testing.T) {
	b := []byte("password")
	WipeByteArray(b)
	for i := range b {
		require.Zero(t, b[i])
	}

	require.NotPanics(t, func() { WipeByteArray(nil) })
}
