package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"PixelCraft":          "pixelcraft",
		"Pixel Craft  AI":     "pixel-craft-ai",
		"Café AI":             "cafe-ai",
		"  --Sci-Fi/Writer--": "sci-fi-writer",
		"C++ Helper!":         "c-helper",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestParseVisitors(t *testing.T) {
	assert.Equal(t, int64(1200000), ParseVisitors("1.2M"))
	assert.Equal(t, int64(850000), ParseVisitors("850K"))
	assert.Equal(t, int64(12345), ParseVisitors("12,345"))
	assert.Equal(t, int64(3000000000), ParseVisitors("3B+"))
	assert.Equal(t, int64(0), ParseVisitors("lots"))
	assert.Equal(t, int64(0), ParseVisitors(""))
}

func TestCanonicalizeURL(t *testing.T) {
	got := CanonicalizeURL(" HTTPS://Example.COM/tool?utm_source=x&b=2&a=1#top ")
	assert.Equal(t, "https://example.com/tool?a=1&b=2", got)
	assert.True(t, IsHTTPURL("https://cdn.example.com/a.png"))
	assert.False(t, IsHTTPURL("/custom-images/a.jpg"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hello world", StripHTML("<p>Hello</p><p>world</p><script>x()</script>"))
	assert.Equal(t, "plain text", StripHTML("  plain  text "))
	assert.Equal(t, []string{"One", "Two"}, StripHTMLList([]string{"<b>One</b>", "", "one", "Two"}))
}
