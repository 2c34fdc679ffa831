package fields

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/filescout/core"
)

// Source produces display values for matched files.
//
// Headers is fixed at configuration time: every Extract call returns exactly
// one value per header, independent of file content. Variable-arity data must
// be folded into one delimited-aggregate column because the result table has
// a fixed schema per run. Extract must not retain cross-file state.
type Source interface {
	Headers() []string
	Extract(file *core.FileRef) ([]string, error)
}

// NewSize returns a source exposing the file size in bytes as "Size".
func NewSize() Source {
	return &statSource{
		header: "Size",
		value: func(file *core.FileRef) (string, error) {
			info, err := file.Stat()
			if err != nil {
				return "", err
			}
			return strconv.FormatInt(info.Size(), 10), nil
		},
	}
}

// NewModified returns a source exposing the modification time as "Modified",
// formatted with the given layout. An empty layout falls back to RFC 3339.
func NewModified(layout string) Source {
	if layout == "" {
		layout = time.RFC3339
	}
	return &statSource{
		header: "Modified",
		value: func(file *core.FileRef) (string, error) {
			info, err := file.Stat()
			if err != nil {
				return "", err
			}
			return info.ModTime().UTC().Format(layout), nil
		},
	}
}

// NewExtension returns a source exposing the file name extension as
// "Extension", without the leading dot.
func NewExtension() Source {
	return &statSource{
		header: "Extension",
		value: func(file *core.FileRef) (string, error) {
			return strings.TrimPrefix(filepath.Ext(file.Name), "."), nil
		},
	}
}

// NewLineCount returns a source exposing the number of lines in the file as
// "Lines".
func NewLineCount() Source {
	return &statSource{
		header: "Lines",
		value: func(file *core.FileRef) (string, error) {
			content, err := file.Content()
			if err != nil {
				return "", err
			}
			if len(content) == 0 {
				return "0", nil
			}
			count := bytes.Count(content, []byte{'\n'})
			if content[len(content)-1] != '\n' {
				count++
			}
			return strconv.Itoa(count), nil
		},
	}
}

// DigestSize is the BLAKE2b digest length in bytes used by NewDigest.
const DigestSize = 16

// NewDigest returns a source exposing a BLAKE2b content digest as "Digest",
// hex encoded.
func NewDigest() Source {
	return &statSource{
		header: "Digest",
		value: func(file *core.FileRef) (string, error) {
			content, err := file.Content()
			if err != nil {
				return "", err
			}
			h, err := blake2b.New(DigestSize, nil)
			if err != nil {
				return "", err
			}
			h.Write(content)
			return hex.EncodeToString(h.Sum(nil)), nil
		},
	}
}

// statSource is a one-column source computed from the file.
type statSource struct {
	header string
	value  func(file *core.FileRef) (string, error)
}

func (s *statSource) Headers() []string { return []string{s.header} }

func (s *statSource) Extract(file *core.FileRef) ([]string, error) {
	v, err := s.value(file)
	if err != nil {
		return nil, err
	}
	return []string{v}, nil
}

// NewRegex returns a source that collects every match of expr in the file
// content into one column named header, joined by delim. A file with no
// matches yields an empty value.
func NewRegex(header, expr, delim string) (Source, error) {
	if header == "" {
		return nil, ErrEmptyHeader
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}
	if delim == "" {
		delim = ", "
	}
	return &regexSource{header: header, re: re, delim: delim}, nil
}

type regexSource struct {
	header string
	re     *regexp.Regexp
	delim  string
}

func (s *regexSource) Headers() []string { return []string{s.header} }

func (s *regexSource) Extract(file *core.FileRef) ([]string, error) {
	content, err := file.Content()
	if err != nil {
		return nil, err
	}
	matches := s.re.FindAllString(string(content), -1)
	return []string{strings.Join(matches, s.delim)}, nil
}
