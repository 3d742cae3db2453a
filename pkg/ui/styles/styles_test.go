package styles

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LoadsEmbeddedStyles(t *testing.T) {
	s, err := New(&bytes.Buffer{}, termenv.Ascii)
	require.NoError(t, err)

	for _, name := range []string{"Owner", "Environment", "Warning", "Error", "Header", "Muted"} {
		_, ok := s.registry[name]
		assert.True(t, ok, "style %s should be defined", name)
	}
}

func TestRender_Ascii(t *testing.T) {
	s, err := New(&bytes.Buffer{}, termenv.Ascii)
	require.NoError(t, err)

	assert.Equal(t, "flask-1.0.0", s.Render("Owner", "flask-1.0.0"))
	assert.Equal(t, "plain", s.Render("NoSuchStyle", "plain"))
}

func TestRender_ANSI(t *testing.T) {
	s, err := New(&bytes.Buffer{}, termenv.ANSI256)
	require.NoError(t, err)

	out := s.Render("Error", "boom")
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "boom")
}

func TestFromData_Invalid(t *testing.T) {
	_, err := FromData([]byte("styles: [nope"), &bytes.Buffer{}, termenv.Ascii)
	assert.Error(t, err)
}
