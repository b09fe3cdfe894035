package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// PlaceholderPrefix identifies self-contained placeholder images.
// Anything carrying this prefix never refers to remote storage.
const PlaceholderPrefix = "data:"

// PlaceholderSVG renders an inline SVG graphic and returns it as a
// base64 data URI, used when a plant is created without image files.
func PlaceholderSVG(width, height int, text string) string {
	svg := fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
    <rect width="100%%" height="100%%" fill="#f0f0f0"/>
    <text x="50%%" y="50%%" font-family="Arial, sans-serif" font-size="14"
          fill="#999" text-anchor="middle" dy=".3em">%s</text>
  </svg>`, width, height, text)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// IsPlaceholder reports whether an image entry is a self-contained
// data URI rather than a remote object-storage URL.
func IsPlaceholder(imageURL string) bool {
	return strings.HasPrefix(imageURL, PlaceholderPrefix)
}
