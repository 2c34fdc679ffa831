package condition

import (
	"fmt"
	"strings"

	ac "github.com/petar-dambovaliev/aho-corasick"
	"github.com/poiesic/filescout/core"
)

// ContentAnyOfOption configures a ContentAnyOf leaf.
type ContentAnyOfOption func(*anyOfLeaf)

// WithCaseInsensitive enables ASCII case-insensitive matching.
func WithCaseInsensitive() ContentAnyOfOption {
	return func(c *anyOfLeaf) {
		c.caseInsensitive = true
	}
}

// WithCaptureName exposes the first matched literal as a capture with the
// given name.
func WithCaptureName(name string) ContentAnyOfOption {
	return func(c *anyOfLeaf) {
		c.capture = name
	}
}

// ContentAnyOf matches files whose content contains any of the given
// literals, using a single Aho-Corasick pass over the content regardless of
// how many literals are configured.
func ContentAnyOf(literals []string, opts ...ContentAnyOfOption) (Condition, error) {
	if len(literals) == 0 {
		return nil, ErrEmptyPattern
	}
	for _, lit := range literals {
		if lit == "" {
			return nil, ErrEmptyPattern
		}
	}

	leaf := &anyOfLeaf{literals: append([]string(nil), literals...)}
	for _, opt := range opts {
		opt(leaf)
	}

	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		AsciiCaseInsensitive: leaf.caseInsensitive,
		MatchKind:            ac.LeftMostLongestMatch,
	})
	automaton := builder.Build(leaf.literals)
	leaf.automaton = &automaton

	return leaf, nil
}

type anyOfLeaf struct {
	literals        []string
	capture         string
	caseInsensitive bool
	automaton       *ac.AhoCorasick
}

func (c *anyOfLeaf) Evaluate(file *core.FileRef) (Outcome, error) {
	content, err := file.Content()
	if err != nil {
		return Outcome{}, err
	}

	match := c.automaton.FindAll(string(content))
	if len(match) == 0 {
		return Outcome{}, nil
	}

	out := Outcome{Matched: true}
	if c.capture != "" {
		idx := match[0].Pattern()
		value := ""
		if idx >= 0 && idx < len(c.literals) {
			value = c.literals[idx]
		}
		out.Captures = append(out.Captures, core.Capture{Name: c.capture, Value: value})
	}
	return out, nil
}

func (c *anyOfLeaf) CaptureNames() []string {
	if c.capture == "" {
		return nil
	}
	return []string{c.capture}
}

func (c *anyOfLeaf) String() string {
	return fmt.Sprintf("content any of [%s]", strings.Join(c.literals, ", "))
}
