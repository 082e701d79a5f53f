package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRemovesNoise(t *testing.T) {
	out, err := New().Extract(`<p>Keep</p><script>alert(1)</script><style>p{}</style><iframe src="x"></iframe><img src="a.png" alt="A">`)
	require.NoError(t, err)

	assert.Contains(t, out, "<p>Keep</p>")
	assert.Contains(t, out, `<img src="a.png" alt="A"/>`)
	assert.NotContains(t, out, "alert")
	assert.NotContains(t, out, "<style>")
	assert.NotContains(t, out, "iframe")
}

func TestExtractKeepsPlainFragment(t *testing.T) {
	out, err := New().Extract("<ul><li>a</li><li>b</li></ul>")
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>a</li><li>b</li></ul>", out)
}

func TestExtractBlank(t *testing.T) {
	out, err := New().Extract("  ")
	require.NoError(t, err)
	assert.Equal(t, "  ", out)
}

func TestExtractDropsNewlineAfterPre(t *testing.T) {
	out, err := New().Extract("<pre>\nline1\n</pre>")
	require.NoError(t, err)
	assert.Equal(t, "<pre>line1\n</pre>", out)
}
