package condition

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/poiesic/filescout/core"
)

// NameContains matches files whose name contains the substring,
// case-insensitively.
func NameContains(substr string) (Condition, error) {
	if substr == "" {
		return nil, ErrEmptyPattern
	}
	folded := strings.ToLower(substr)
	return &funcLeaf{
		name: fmt.Sprintf("name contains %q", substr),
		eval: func(file *core.FileRef) (bool, error) {
			return strings.Contains(strings.ToLower(file.Name), folded), nil
		},
	}, nil
}

// NameGlob matches file names against a shell glob pattern.
func NameGlob(pattern string) (Condition, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return &funcLeaf{
		name: fmt.Sprintf("name glob %q", pattern),
		eval: func(file *core.FileRef) (bool, error) {
			return path.Match(pattern, file.Name)
		},
	}, nil
}

// NameRegex matches file names against a regular expression.
// Named groups in the expression become captures on match.
func NameRegex(expr string) (Condition, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &regexLeaf{
		name: fmt.Sprintf("name matches %q", expr),
		re:   re,
		text: func(file *core.FileRef) (string, error) { return file.Name, nil },
	}, nil
}

// ContentRegex matches file content against a regular expression.
// Named groups in the expression become captures on match. Unreadable files
// surface a per-file evaluation error.
func ContentRegex(expr string) (Condition, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &regexLeaf{
		name: fmt.Sprintf("content matches %q", expr),
		re:   re,
		text: func(file *core.FileRef) (string, error) {
			content, err := file.Content()
			if err != nil {
				return "", err
			}
			return string(content), nil
		},
	}, nil
}

// regexLeaf matches a regular expression against some text derived from the
// file and exposes the expression's named groups as captures.
type regexLeaf struct {
	name string
	re   *regexp.Regexp
	text func(file *core.FileRef) (string, error)
}

func (c *regexLeaf) Evaluate(file *core.FileRef) (Outcome, error) {
	text, err := c.text(file)
	if err != nil {
		return Outcome{}, err
	}
	match := c.re.FindStringSubmatch(text)
	if match == nil {
		return Outcome{}, nil
	}
	out := Outcome{Matched: true}
	for i, name := range c.re.SubexpNames() {
		if name == "" || i >= len(match) {
			continue
		}
		out.Captures = append(out.Captures, core.Capture{Name: name, Value: match[i]})
	}
	return out, nil
}

func (c *regexLeaf) CaptureNames() []string {
	var names []string
	for _, name := range c.re.SubexpNames() {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (c *regexLeaf) String() string { return c.name }

// SizeAtLeast matches files of at least min bytes.
func SizeAtLeast(min int64) (Condition, error) {
	if min < 0 {
		return nil, ErrInvalidRange
	}
	return &funcLeaf{
		name: fmt.Sprintf("size >= %d", min),
		eval: func(file *core.FileRef) (bool, error) {
			info, err := file.Stat()
			if err != nil {
				return false, err
			}
			return info.Size() >= min, nil
		},
	}, nil
}

// SizeAtMost matches files of at most max bytes.
func SizeAtMost(max int64) (Condition, error) {
	if max < 0 {
		return nil, ErrInvalidRange
	}
	return &funcLeaf{
		name: fmt.Sprintf("size <= %d", max),
		eval: func(file *core.FileRef) (bool, error) {
			info, err := file.Stat()
			if err != nil {
				return false, err
			}
			return info.Size() <= max, nil
		},
	}, nil
}

// ModifiedAfter matches files modified strictly after t.
func ModifiedAfter(t time.Time) (Condition, error) {
	if t.IsZero() {
		return nil, ErrEmptyPattern
	}
	return &funcLeaf{
		name: fmt.Sprintf("modified after %s", t.Format(time.RFC3339)),
		eval: func(file *core.FileRef) (bool, error) {
			info, err := file.Stat()
			if err != nil {
				return false, err
			}
			return info.ModTime().After(t), nil
		},
	}, nil
}
