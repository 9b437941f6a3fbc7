package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlwaysYes(t *testing.T) {
	ok, err := AlwaysYes()("Continue with corrected costs?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAlwaysNo(t *testing.T) {
	ok, err := AlwaysNo()("Continue with corrected costs?")
	require.NoError(t, err)
	assert.False(t, ok)
}
