// ABOUTME: Constrained formula evaluator for user-defined calculated metrics.
// ABOUTME: Wraps expr-lang/expr with a compile cache and a strict numeric result policy.
package formula

import (
	"fmt"
	"math"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Evaluator compiles and runs metric formulas. Formulas are arithmetic
// expressions: bare identifiers resolve to entries in the supplied
// environment, so metric ids act as variables. There is no fallback to any
// ambient state; everything a formula can see arrives through the env map.
//
// Compiled programs are cached by expression text. Safe for concurrent use.
type Evaluator struct {
	mu    sync.RWMutex
	cache map[string]*vm.Program
}

// NewEvaluator creates an evaluator with an empty compile cache.
func NewEvaluator() *Evaluator {
	return &Evaluator{cache: make(map[string]*vm.Program)}
}

// Eval runs the expression against env and returns a finite number rounded to
// two decimal places. Any compile error, runtime error (including missing
// variables), or non-finite/non-numeric result comes back as an error; the
// caller decides whether that is fatal. The aggregation pipeline treats every
// error as "leave the value unset".
func (e *Evaluator) Eval(expression string, env map[string]any) (float64, error) {
	prog, err := e.compile(expression, env)
	if err != nil {
		return 0, err
	}

	out, err := expr.Run(prog, env)
	if err != nil {
		return 0, fmt.Errorf("run formula: %w", err)
	}

	val, err := toFloat(out)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, fmt.Errorf("formula result is not finite")
	}

	return Round2(val), nil
}

func (e *Evaluator) compile(expression string, env map[string]any) (*vm.Program, error) {
	e.mu.RLock()
	prog, ok := e.cache[expression]
	e.mu.RUnlock()
	if ok {
		return prog, nil
	}

	// Compiling against the env keeps helper functions like sum visible to
	// the type checker; the builtin array sum would otherwise shadow ours and
	// reject the (metricId, period) call shape. Typing stays dynamic with a
	// map env, so the cached program is valid for any env of the same shape.
	prog, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.DisableBuiltin("sum"))
	if err != nil {
		return nil, fmt.Errorf("compile formula: %w", err)
	}

	e.mu.Lock()
	e.cache[expression] = prog
	e.mu.Unlock()
	return prog, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("formula result %T is not numeric", v)
	}
}

// Round2 rounds to two decimal places, the precision stored for every
// calculated metric value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MathFuncs returns the fixed math helper library available to formulas.
// The engine merges these into the env before metric values, so a metric id
// that collides with a helper name shadows the helper. Arguments are taken
// as any because expression literals may arrive as ints; a non-numeric
// argument yields NaN, which the result policy rejects.
func MathFuncs() map[string]any {
	return map[string]any{
		"pow":  func(x, y any) float64 { return math.Pow(Num(x), Num(y)) },
		"sqrt": func(x any) float64 { return math.Sqrt(Num(x)) },
		"log":  func(x any) float64 { return math.Log(Num(x)) },
		"exp":  func(x any) float64 { return math.Exp(Num(x)) },
	}
}

// Num coerces an expression value to float64, returning NaN when it is not
// numeric so the failure surfaces as a non-finite result.
func Num(v any) float64 {
	f, err := toFloat(v)
	if err != nil {
		return math.NaN()
	}
	return f
}
