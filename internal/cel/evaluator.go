// Package cel filters records with CEL expressions. The record under test
// is bound to the variable "_".
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/oakwood-commons/colkit/pkg/column"
)

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates a new CEL evaluator with standard library functions.
func NewEvaluator() (*Evaluator, error) {
	env, err := newStandardCELEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// newStandardCELEnv creates a standard CEL environment with common extensions.
func newStandardCELEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 6+len(opts))
	allOpts = append(allOpts,
		cel.Variable("_", cel.DynType),
		// JSON numbers decode as doubles; let them compare with int literals
		cel.CrossTypeNumericComparisons(true),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

func (e *Evaluator) program(expr string) (cel.Program, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return prg, nil
}

// Evaluate evaluates expr with data bound to "_" and converts the result
// to Go types.
func (e *Evaluator) Evaluate(expr string, data any) (any, error) {
	prg, err := e.program(expr)
	if err != nil {
		return nil, err
	}
	result, _, err := prg.Eval(map[string]any{"_": data})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}
	return ToGo(result), nil
}

// ToGo converts CEL types to Go native types recursively.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	}

	inner := val.Value()
	switch v := inner.(type) {
	case []ref.Val:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = ToGo(elem)
		}
		return out
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[fmt.Sprintf("%v", k.Value())] = ToGo(elem)
		}
		return out
	}
	return inner
}

// Filter is a compiled boolean expression over one record.
type Filter struct {
	expr   string
	prg    cel.Program
	fields []string
}

// Compile compiles expr into a Filter. Expressions whose type is known not
// to be bool are rejected here; dynamic ones are checked per record.
func (e *Evaluator) Compile(expr string) (*Filter, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	switch out := ast.OutputType(); out.Kind() {
	case types.BoolKind, types.DynKind, types.AnyKind:
	default:
		return nil, fmt.Errorf("filter %q must return bool, not %s", expr, out.String())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	f := &Filter{expr: expr, prg: prg}
	if parsed, err := cel.AstToParsedExpr(ast); err == nil {
		f.fields = recordFields(parsed.GetExpr())
	}
	return f, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.expr }

// Fields lists the record fields the expression reads directly off "_",
// in order of first use.
func (f *Filter) Fields() []string { return f.fields }

func recordFields(root *exprpb.Expr) []string {
	var out []string
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	var walk func(e *exprpb.Expr)
	walk = func(e *exprpb.Expr) {
		if e == nil {
			return
		}
		switch k := e.GetExprKind().(type) {
		case *exprpb.Expr_SelectExpr:
			sel := k.SelectExpr
			if isRecordIdent(sel.GetOperand()) {
				add(sel.GetField())
				return
			}
			walk(sel.GetOperand())
		case *exprpb.Expr_CallExpr:
			call := k.CallExpr
			args := call.GetArgs()
			if call.GetFunction() == "_[_]" && len(args) == 2 && isRecordIdent(args[0]) {
				if key, ok := args[1].GetConstExpr().GetConstantKind().(*exprpb.Constant_StringValue); ok {
					add(key.StringValue)
					return
				}
			}
			walk(call.GetTarget())
			for _, a := range args {
				walk(a)
			}
		case *exprpb.Expr_ListExpr:
			for _, el := range k.ListExpr.GetElements() {
				walk(el)
			}
		case *exprpb.Expr_StructExpr:
			for _, entry := range k.StructExpr.GetEntries() {
				walk(entry.GetMapKey())
				walk(entry.GetValue())
			}
		case *exprpb.Expr_ComprehensionExpr:
			c := k.ComprehensionExpr
			walk(c.GetIterRange())
			walk(c.GetAccuInit())
			walk(c.GetLoopCondition())
			walk(c.GetLoopStep())
			walk(c.GetResult())
		}
	}
	walk(root)
	return out
}

func isRecordIdent(e *exprpb.Expr) bool {
	return e.GetIdentExpr().GetName() == "_"
}

// Match reports whether record satisfies the filter.
func (f *Filter) Match(record column.Record) (bool, error) {
	result, _, err := f.prg.Eval(map[string]any{"_": map[string]any(record)})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := result.(types.Bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %s, want bool", f.expr, result.Type().TypeName())
	}
	return bool(b), nil
}

// Apply returns the records that satisfy the filter, in order. Errors name
// the index of the offending record.
func (f *Filter) Apply(records []column.Record) ([]column.Record, error) {
	out := make([]column.Record, 0, len(records))
	for i, r := range records {
		ok, err := f.Match(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}
