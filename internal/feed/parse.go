package feed

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

// ParseError reports a document that could not be decoded.
type ParseError struct {
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Parse reads a document, choosing the decoder by file extension.
// The result is normalized and validated.
func Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	var doc *Document
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		doc, err = ParseYAML(path, data)
	case ".cue":
		doc, err = ParseCUE(path, data)
	default:
		return nil, &ParseError{Path: path, Message: fmt.Sprintf("unsupported feed format %q", ext)}
	}
	if err != nil {
		return nil, err
	}

	doc.Normalize()
	if err := doc.Validate(); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error()}
	}
	return doc, nil
}

// ParseYAML decodes a YAML document. Unknown keys are rejected; an empty
// document decodes to an empty Document.
func ParseYAML(path string, data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, &ParseError{Path: path, Message: err.Error()}
	}
	return &doc, nil
}

// ParseCUE evaluates a CUE document and decodes its concrete value.
func ParseCUE(path string, data []byte) (*Document, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, cueError(path, err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(path, err)
	}

	var doc Document
	if err := v.Decode(&doc); err != nil {
		return nil, cueError(path, err)
	}
	return &doc, nil
}

// cueError keeps the first CUE error and its position.
func cueError(path string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ParseError{Path: path, Message: err.Error()}
	}

	first := errs[0]
	pe := &ParseError{Path: path, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		pe.Pos = positions[0]
	}
	return pe
}
