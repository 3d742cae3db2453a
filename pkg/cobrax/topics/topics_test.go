package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTopics() fstest.MapFS {
	return fstest.MapFS{
		"clobbered.md":      {Data: []byte("# Clobbered files\n\nMore than one owner.")},
		"environments.txt":  {Data: []byte("Known environments")},
		"option-unix.txt":   {Data: []byte("One line per path")},
		"nested/config.txt": {Data: []byte("Configuration")},
		"ignore.json":       {Data: []byte("{}")},
	}
}

func TestNew_ScansTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm, err := New(testTopics(), Options{})
		require.NoError(t, err)

		assert.Equal(t, []string{"clobbered", "config", "environments", "option-unix"}, tm.ListTopics())

		topic, ok := tm.GetTopic("config")
		require.True(t, ok)
		assert.Equal(t, "Configuration", topic.Content)
		assert.Equal(t, "nested/config.txt", topic.FilePath)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm, err := New(testTopics(), Options{Extensions: []string{".json"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"ignore"}, tm.ListTopics())
	})
}

func TestGetTopic(t *testing.T) {
	tm, err := New(testTopics(), Options{})
	require.NoError(t, err)

	tests := []struct {
		query    string
		expected string
		found    bool
	}{
		{"clobbered", "clobbered", true},
		{"--unix", "option-unix", true},
		{"-unix", "option-unix", true},
		{"unix", "option-unix", true},
		{"option-unix", "option-unix", true},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			topic, ok := tm.GetTopic(tt.query)
			assert.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Title", r.Render("# Title", ".md"))
}

func TestGlamourRenderer_LeavesTextAlone(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}

func TestGlamourRenderer_RendersMarkdown(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 60}
	out := r.Render("# Clobbered files\n\nMore than one owner.", ".md")
	assert.Contains(t, out, "Clobbered files")
	assert.Contains(t, out, "More than one owner.")
}

func TestShow(t *testing.T) {
	tm, err := New(testTopics(), Options{})
	require.NoError(t, err)

	t.Run("topic", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, tm.Show(&out, "environments", "app --topic NAME"))
		assert.Equal(t, "Known environments", out.String())
	})

	t.Run("option topic", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, tm.Show(&out, "--unix", "app --topic NAME"))
		assert.Equal(t, "One line per path", out.String())
	})

	t.Run("list", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, tm.Show(&out, ListName, "app --topic NAME"))
		assert.Contains(t, out.String(), "General topics:\n  clobbered\n  config\n  environments\n")
		assert.Contains(t, out.String(), "Option topics:\n  --unix\n")
		assert.Contains(t, out.String(), "Use 'app --topic NAME'")
	})

	t.Run("unknown", func(t *testing.T) {
		var out bytes.Buffer
		err := tm.Show(&out, "missing", "app --topic topics")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"missing"`)
		assert.Empty(t, out.String())
	})
}

func TestPrintTopics_Empty(t *testing.T) {
	tm, err := New(fstest.MapFS{}, Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	tm.PrintTopics(&out, "app --topic NAME")
	assert.Equal(t, "No help topics available.\n", out.String())
}

func TestComplete(t *testing.T) {
	tm, err := New(testTopics(), Options{})
	require.NoError(t, err)

	names, directive := tm.Complete(&cobra.Command{}, nil, "")
	assert.Equal(t, []string{"topics", "clobbered", "config", "environments", "option-unix"}, names)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}
