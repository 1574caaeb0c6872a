package cel

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"

	"github.com/oakwood-commons/colkit/pkg/column"
)

func TestEvaluate_SimpleExpressions(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	tests := []struct {
		name     string
		expr     string
		data     any
		expected any
	}{
		{"access field", "_.name", map[string]any{"name": "test"}, "test"},
		{"access number", "_.count", map[string]any{"count": 42}, int64(42)},
		{"boolean", "_.active", map[string]any{"active": true}, true},
		{"nested field", "_.user.email", map[string]any{"user": map[string]any{"email": "a@example.com"}}, "a@example.com"},
		{"string extension", "_.name.upperAscii()", map[string]any{"name": "ab"}, "AB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := eval.Evaluate(tt.expr, tt.data)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestEvaluate_Collections(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	result, err := eval.Evaluate("_.items.map(x, x * 2)", map[string]any{"items": []any{1, 2}})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	list, ok := result.([]any)
	if !ok || len(list) != 2 || list[1] != int64(4) {
		t.Fatalf("unexpected result %#v", result)
	}

	result, err = eval.Evaluate(`{"a": 1}`, nil)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	m, ok := result.(map[string]any)
	if !ok || m["a"] != int64(1) {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	if _, err := eval.Evaluate("_.(", nil); err == nil || !strings.Contains(err.Error(), "compilation error") {
		t.Fatalf("expected compilation error, got %v", err)
	}
	if _, err := eval.Evaluate("_.missing", map[string]any{}); err == nil || !strings.Contains(err.Error(), "eval error") {
		t.Fatalf("expected eval error, got %v", err)
	}
}

func TestToGo_PrimitiveTypes(t *testing.T) {
	tests := []struct {
		in   ref.Val
		want any
	}{
		{types.Bool(true), true},
		{types.Int(3), int64(3)},
		{types.Uint(3), uint64(3)},
		{types.Double(1.5), 1.5},
		{types.String("x"), "x"},
	}
	for _, tt := range tests {
		if got := ToGo(tt.in); got != tt.want {
			t.Errorf("ToGo(%v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
	if ToGo(nil) != nil {
		t.Error("ToGo(nil) should be nil")
	}
}

func TestFilter(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	records := []column.Record{
		{"name": "a", "size": float64(1)},
		{"name": "b", "size": float64(5)},
		{"name": "c", "size": float64(9)},
	}

	f, err := eval.Compile("_.size > 3")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if f.String() != "_.size > 3" {
		t.Errorf("unexpected String() %q", f.String())
	}

	got, err := f.Apply(records)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(got) != 2 || got[0]["name"] != "b" || got[1]["name"] != "c" {
		t.Fatalf("unexpected records %v", got)
	}
}

func TestFilter_NonBoolean(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	if _, err := eval.Compile(`"yes"`); err == nil || !strings.Contains(err.Error(), "must return bool") {
		t.Fatalf("expected static type error, got %v", err)
	}

	f, err := eval.Compile("_.name")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	_, err = f.Apply([]column.Record{{"name": "a"}})
	if err == nil || !strings.Contains(err.Error(), "record 0") || !strings.Contains(err.Error(), "want bool") {
		t.Fatalf("expected dynamic type error, got %v", err)
	}
}

func TestFilter_MissingFieldIsError(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	f, err := eval.Compile("_.size > 1")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if _, err := f.Apply([]column.Record{{"size": 2}, {"name": "x"}}); err == nil || !strings.Contains(err.Error(), "record 1") {
		t.Fatalf("expected error for record 1, got %v", err)
	}

	f, err = eval.Compile(`has(_.size) && _.size > 1`)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	got, err := f.Apply([]column.Record{{"size": 2}, {"name": "x"}})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
}

func TestFilter_Fields(t *testing.T) {
	eval, err := NewEvaluator()
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}

	tests := []struct {
		expr string
		want []string
	}{
		{`_.age > 30`, []string{"age"}},
		{`_.name == "x" || _.age > 1 && _.name != "y"`, []string{"name", "age"}},
		{`_["full name"].startsWith("A")`, []string{"full name"}},
		{`_.user.email.endsWith("@example.com")`, []string{"user"}},
		{`has(_.tags) && _.tags.exists(t, t == "go")`, []string{"tags"}},
		{`true`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := eval.Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			if got := f.Fields(); !slices.Equal(got, tt.want) {
				t.Errorf("Fields() = %v, want %v", got, tt.want)
			}
		})
	}
}
