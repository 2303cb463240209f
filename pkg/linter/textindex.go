package linter

import (
	"fmt"
	"os"
	"strings"
)

// TextIndex provides line-oriented access to raw source text for rules
// that inspect layout (blank lines, trailing newlines). Text is loaded
// lazily on first request and cached for the rest of the run, so a
// traversal whose rules never ask for text never touches the filesystem.
//
// A TextIndex is scoped to one engine run and is not safe for concurrent
// use; the runner creates one per file.
type TextIndex struct {
	text  map[string]string
	lines map[string][]string
	err   map[string]error
}

// NewTextIndex creates an index that reads file contents from disk on
// demand.
func NewTextIndex() *TextIndex {
	return &TextIndex{
		text:  make(map[string]string),
		lines: make(map[string][]string),
		err:   make(map[string]error),
	}
}

// NewTextIndexFromSource creates an index pre-seeded with src for path, so
// in-memory input (API request bodies, tests) never hits the filesystem.
func NewTextIndexFromSource(path, src string) *TextIndex {
	idx := NewTextIndex()
	idx.text[path] = src
	return idx
}

// RawText returns the full source text for path. A path that cannot be
// read fails with ErrFileUnavailable; the failure is cached so the
// filesystem is probed at most once per run.
func (idx *TextIndex) RawText(path string) (string, error) {
	if text, ok := idx.text[path]; ok {
		return text, nil
	}
	if err, ok := idx.err[path]; ok {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		wrapped := fmt.Errorf("%w: %s: %v", ErrFileUnavailable, path, err)
		idx.err[path] = wrapped
		return "", wrapped
	}
	idx.text[path] = string(data)
	return idx.text[path], nil
}

// Lines returns the source split into lines (terminators stripped). The
// split is computed once and cached.
func (idx *TextIndex) Lines(path string) ([]string, error) {
	if lines, ok := idx.lines[path]; ok {
		return lines, nil
	}
	text, err := idx.RawText(path)
	if err != nil {
		return nil, err
	}
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	idx.lines[path] = strings.Split(normalized, "\n")
	return idx.lines[path], nil
}

// Context carries the per-run state rules may consult during Check: the
// file under analysis, its lazily loaded text and the active config.
type Context struct {
	FilePath string
	Config   *Config
	index    *TextIndex
}

// NewContext builds a rule context over the given text index.
func NewContext(filePath string, cfg *Config, index *TextIndex) *Context {
	if index == nil {
		index = NewTextIndex()
	}
	return &Context{FilePath: filePath, Config: cfg, index: index}
}

// Lines returns the current file's source lines, or ErrFileUnavailable.
func (c *Context) Lines() ([]string, error) {
	return c.index.Lines(c.FilePath)
}

// RawText returns the current file's raw text, or ErrFileUnavailable.
func (c *Context) RawText() (string, error) {
	return c.index.RawText(c.FilePath)
}
