package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayContains(t *testing.T) {
	arr := StringArray{"tool_added", "post_published"}
	assert.True(t, arr.Contains("tool_added"))
	assert.False(t, arr.Contains("Tool_Added"))
	assert.False(t, arr.Contains("tool_deleted"))
	assert.False(t, StringArray(nil).Contains("anything"))
}

func TestStringArrayScanLegacyValues(t *testing.T) {
	var a StringArray
	require.NoError(t, a.Scan(`["a","b"]`))
	assert.Equal(t, StringArray{"a", "b"}, a)

	require.NoError(t, a.Scan(`"single"`))
	assert.Equal(t, StringArray{"single"}, a)

	require.NoError(t, a.Scan("plain text"))
	assert.Equal(t, StringArray{"plain text"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Empty(t, a)
}
