// Package loader reads table records for previewing column descriptors.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/colkit/pkg/column"
)

// LoadRecords parses input into records, auto-detecting the format:
//   - a JSON array of objects, or a single JSON object
//   - newline-delimited JSON, one object per line
//   - YAML: a sequence of mappings, or several mapping documents (---)
//   - TOML: an array of tables such as [[rows]]
//
// A top-level object whose only array-valued key holds objects (for
// example {"items": [...]}) is unwrapped to that array.
func LoadRecords(input string) ([]column.Record, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	docs, err := loadDocuments(input)
	if err != nil {
		return nil, err
	}
	return toRecords(docs)
}

// LoadRecordsFile reads path and parses it with LoadRecords. The extension
// decides the format when it is unambiguous.
func LoadRecordsFile(path string) ([]column.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var docs []any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		docs, err = loadTOML(string(data))
	case ".ndjson", ".jsonl":
		docs, err = loadNDJSON(string(data))
	default:
		return LoadRecords(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return toRecords(docs)
}

func loadDocuments(input string) ([]any, error) {
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return loadMultiDocYAML(input)
	}
	if lines := strings.Split(input, "\n"); len(lines) > 1 && isLikelyNDJSON(lines) {
		return loadNDJSON(input)
	}
	// TOML [[section]] headers look like JSON arrays; check TOML first
	if isLikelyTOML(input) {
		return loadTOML(input)
	}
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return loadJSON(input)
	}
	return loadYAML(input)
}

func toRecords(docs []any) ([]column.Record, error) {
	if len(docs) == 1 {
		docs = unwrap(docs[0])
	}
	records := make([]column.Record, 0, len(docs))
	for i, doc := range docs {
		m, ok := doc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: expected an object, got %T", i, doc)
		}
		records = append(records, column.Record(m))
	}
	return records, nil
}

func unwrap(doc any) []any {
	switch v := doc.(type) {
	case []any:
		return v
	case map[string]any:
		var arrays []string
		for k, val := range v {
			if list, ok := val.([]any); ok && allObjects(list) {
				arrays = append(arrays, k)
			}
		}
		if len(arrays) == 1 {
			return v[arrays[0]].([]any)
		}
		return []any{v}
	}
	return []any{doc}
}

func allObjects(list []any) bool {
	if len(list) == 0 {
		return false
	}
	for _, item := range list {
		if _, ok := item.(map[string]any); !ok {
			return false
		}
	}
	return true
}

func loadJSON(input string) ([]any, error) {
	var data any
	if err := json.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return []any{data}, nil
}

func loadYAML(input string) ([]any, error) {
	var data any
	if err := yaml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return []any{data}, nil
}

func loadMultiDocYAML(input string) ([]any, error) {
	var results []any
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			results = append(results, doc)
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no documents found in multi-document YAML")
	}
	return results, nil
}

func loadNDJSON(input string) ([]any, error) {
	lines := strings.Split(input, "\n")
	results := make([]any, 0, len(lines))
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", n+1, err)
		}
		results = append(results, obj)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return results, nil
}

// isLikelyNDJSON requires several lines, most of them complete JSON
// values, so YAML lists and pretty-printed JSON are not mistaken for NDJSON.
func isLikelyNDJSON(lines []string) bool {
	jsonCount, nonEmpty := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && json.Valid([]byte(trimmed)) {
			jsonCount++
		}
	}
	return nonEmpty > 1 && jsonCount > nonEmpty/2
}

var (
	tomlSection  = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValue = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// isLikelyTOML is true when the input has a [section] header or mostly
// key = value lines.
func isLikelyTOML(input string) bool {
	sections, keyValues, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSection.MatchString(line) {
			sections++
		}
		if tomlKeyValue.MatchString(line) {
			keyValues++
		}
	}
	return sections > 0 || (nonEmpty > 0 && keyValues > nonEmpty/2)
}

func loadTOML(input string) ([]any, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []any{normalizeTOML(data)}, nil
}

// normalizeTOML turns the []map[string]any go-toml produces for arrays of
// tables into []any so they unwrap like JSON arrays.
func normalizeTOML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			x[k] = normalizeTOML(val)
		}
		return x
	case []map[string]any:
		out := make([]any, len(x))
		for i, m := range x {
			out[i] = normalizeTOML(m)
		}
		return out
	case []any:
		for i, val := range x {
			x[i] = normalizeTOML(val)
		}
		return x
	}
	return v
}
