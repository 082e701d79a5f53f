package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToNativeEngine(t *testing.T) {
	n, err := New("")
	require.NoError(t, err)
	assert.Equal(t, EngineNative, n.Engine())

	md, err := n.Normalize("<ul><li>a</li><li>b</li></ul>")
	require.NoError(t, err)
	assert.Equal(t, "- a\n- b", md)
}

func TestNewRejectsUnknownEngine(t *testing.T) {
	_, err := New("pandoc")
	assert.Error(t, err)
}

func TestLibraryEngine(t *testing.T) {
	n, err := New(EngineLibrary)
	require.NoError(t, err)

	md, err := n.Normalize("<p>Hello <strong>world</strong></p>")
	require.NoError(t, err)
	assert.Contains(t, md, "**world**")
}
