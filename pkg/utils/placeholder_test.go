package utils

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderSVGIsSelfContained(t *testing.T) {
	uri := PlaceholderSVG(150, 150, "Plant Image")

	require.True(t, strings.HasPrefix(uri, "data:image/svg+xml;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/svg+xml;base64,"))
	require.NoError(t, err)

	svg := string(raw)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, `width="150"`)
	assert.Contains(t, svg, "Plant Image")
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder(PlaceholderSVG(10, 10, "x")))
	assert.True(t, IsPlaceholder("data:image/png;base64,AAAA"))
	assert.False(t, IsPlaceholder("https://img.test/bucket/plants/abc.jpg"))
	assert.False(t, IsPlaceholder(""))
}
