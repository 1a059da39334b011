package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	digest, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	require.NotEqual(t, "Sup3rSecret!", digest)

	require.True(t, CheckPassword(digest, "Sup3rSecret!"))
	require.False(t, CheckPassword(digest, "wrong-password"))
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	b, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
