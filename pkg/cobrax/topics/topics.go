// Package topics provides a pluggable, topic-based help system for Cobra CLI applications.
// Topics are files read from an fs.FS (usually embedded), so concepts that
// are not commands or flags can still be documented from the command line.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

const (
	// optionPrefix marks topics that document a flag: "--unix" shows option-unix
	optionPrefix = "option-"

	// ListName is the pseudo topic that lists all the others
	ListName = "topics"
)

// TopicManager manages help topics for a Cobra application
type TopicManager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Topic represents a help topic
type Topic struct {
	Name     string
	FilePath string
	Content  string
}

// Options configures the TopicManager
type Options struct {
	// Extensions is the list of file extensions to consider as topics
	// Defaults to [".txt", ".md"] if not specified
	Extensions []string

	// Renderer for formatting topic content (optional)
	// Defaults to PlainRenderer if not specified
	Renderer Renderer
}

// New loads every topic file found in fsys
func New(fsys fs.FS, opts Options) (*TopicManager, error) {
	tm := &TopicManager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}

	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}

	if err := tm.scanTopics(fsys); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}
	return tm, nil
}

func (tm *TopicManager) scanTopics(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !tm.supported(path.Ext(p)) {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		tm.topics[name] = &Topic{
			Name:     name,
			FilePath: p,
			Content:  string(content),
		}
		return nil
	})
}

func (tm *TopicManager) supported(ext string) bool {
	for _, valid := range tm.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// GetTopic retrieves a topic by name. Flag-style names (--unix) also match
// option- topics.
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")

	if topic, exists := tm.topics[name]; exists {
		return topic, true
	}
	topic, exists := tm.topics[optionPrefix+name]
	return topic, exists
}

// ListTopics returns all available topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats a topic with the configured renderer
func (tm *TopicManager) Render(topic *Topic) string {
	return tm.renderer.Render(topic.Content, path.Ext(topic.FilePath))
}

// Show writes the named topic to w. "topics" lists what is available.
func (tm *TopicManager) Show(w io.Writer, name, hint string) error {
	if name == ListName {
		tm.PrintTopics(w, hint)
		return nil
	}

	topic, exists := tm.GetTopic(name)
	if !exists {
		return fmt.Errorf("unknown help topic %q, see '%s'", name, hint)
	}
	_, err := fmt.Fprint(w, tm.Render(topic))
	return err
}

// Complete offers topic names for a --topic style flag
func (tm *TopicManager) Complete(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return append([]string{ListName}, tm.ListTopics()...), cobra.ShellCompDirectiveNoFileComp
}

// PrintTopics lists every topic, option topics in their flag form. hint is
// the command line that shows a single topic.
func (tm *TopicManager) PrintTopics(w io.Writer, hint string) {
	topics := tm.ListTopics()
	if len(topics) == 0 {
		_, _ = fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, t := range topics {
		if strings.HasPrefix(t, optionPrefix) {
			options = append(options, strings.TrimPrefix(t, optionPrefix))
		} else {
			general = append(general, t)
		}
	}

	_, _ = fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		_, _ = fmt.Fprintln(w, "\nGeneral topics:")
		for _, t := range general {
			_, _ = fmt.Fprintf(w, "  %s\n", t)
		}
	}
	if len(options) > 0 {
		_, _ = fmt.Fprintln(w, "\nOption topics:")
		for _, t := range options {
			_, _ = fmt.Fprintf(w, "  --%s\n", t)
		}
	}
	_, _ = fmt.Fprintf(w, "\nUse '%s' to read about a specific topic.\n", hint)
}
