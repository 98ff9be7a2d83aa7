package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIndex(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "index", IndexPage{Title: "Movie Preview", Storefront: "in"})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>Movie Preview</title>")
	assert.Contains(t, html, "(in storefront)")
	assert.Contains(t, html, `id="movieInput"`)
	assert.Contains(t, html, "/api/preview?movie=")
}

func TestRenderEscapesData(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "index", IndexPage{Title: "<script>x</script>", Storefront: "in"})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<title><script>")
}

func TestLoadTemplate_Caches(t *testing.T) {
	tm := NewTemplateManager()

	first, err := tm.LoadTemplate("index")
	require.NoError(t, err)
	second, err := tm.LoadTemplate("index")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestLoadTemplate_Missing(t *testing.T) {
	_, err := GetTemplate("does-not-exist")
	assert.Error(t, err)
}
