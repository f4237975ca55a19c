package lib_test

import (
	"freshcatch_server/lib"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCSRFToken(t *testing.T) {
	t.Parallel()
	first, err := lib.GenerateCSRFToken()
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := lib.GenerateCSRFToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
