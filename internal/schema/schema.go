// Package schema reads column-spec documents and turns them into column
// descriptors.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/colkit/pkg/column"
)

// ErrInvalidDocument is wrapped by every validation error from Parse.
var ErrInvalidDocument = errors.New("invalid column spec")

// Document is a list of column specs, in display order.
type Document struct {
	// Name is an optional label shown in preview headers.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Slots maps scoped slot names to the text the preview shows for
	// columns bound to that slot. "{value}" is replaced by the field value.
	Slots map[string]string `yaml:"slots,omitempty" json:"slots,omitempty"`

	Columns []ColumnSpec `yaml:"columns" json:"columns"`
}

// ColumnSpec is one column entry of a Document.
type ColumnSpec struct {
	// Title is the header text. Required.
	Title string `yaml:"title" json:"title"`

	// Col is the record field the column displays. "index" and "action"
	// select the row-number and action-slot strategies. Required.
	Col string `yaml:"col" json:"col"`

	// Scope forces (true) or suppresses (false) a named render slot.
	// Left unset, only the index and action columns get special handling.
	Scope *bool `yaml:"scope,omitempty" json:"scope,omitempty"`

	// Edit builds the column with column.Edit instead of column.T.
	Edit bool `yaml:"edit,omitempty" json:"edit,omitempty"`

	// Extra holds extra properties. Key order decides decorator order.
	Extra column.Props `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// Parse decodes a YAML or JSON document and validates it.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}

	var doc Document
	if trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid JSON column spec: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(trimmed))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid YAML column spec: %w", err)
		}
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseFile reads and parses the document at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate checks that every column has a title and a field, and that
// edit columns do not also set scope.
func (d *Document) Validate() error {
	if len(d.Columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidDocument)
	}
	var errs []error
	for i, c := range d.Columns {
		if c.Title == "" {
			errs = append(errs, fmt.Errorf("%w: column %d: title is required", ErrInvalidDocument, i+1))
		}
		if c.Col == "" {
			errs = append(errs, fmt.Errorf("%w: column %d (%q): col is required", ErrInvalidDocument, i+1, c.Title))
		}
		if c.Edit && c.Scope != nil {
			errs = append(errs, fmt.Errorf("%w: column %d (%q): scope cannot be combined with edit", ErrInvalidDocument, i+1, c.Title))
		}
	}
	return errors.Join(errs...)
}

// Descriptor builds the column descriptor for c.
func (c ColumnSpec) Descriptor() *column.Descriptor {
	if c.Edit {
		return column.Edit(c.Title, c.Col, c.Extra)
	}
	return column.T(c.Title, c.Col, column.ScopeOf(c.Scope), c.Extra)
}

// Build returns one descriptor per column, in document order.
func (d *Document) Build() []*column.Descriptor {
	out := make([]*column.Descriptor, 0, len(d.Columns))
	for _, c := range d.Columns {
		out = append(out, c.Descriptor())
	}
	return out
}
