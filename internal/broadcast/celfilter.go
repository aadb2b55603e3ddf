package broadcast

import (
	"strings"

	"github.com/google/cel-go/cel"
)

// celFilter wraps a compiled CEL program evaluated per subscriber before
// delivery. When disabled, Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

// newCELFilter compiles expr against the event variables. An empty
// expression yields a disabled filter.
func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("action", cel.StringType),
		cel.Variable("type", cel.StringType),
		cel.Variable("user_id", cel.StringType),
		cel.Variable("id", cel.StringType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against an event. Evaluation
// errors or non-bool results count as no-match.
func (f celFilter) Eval(ev Event) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"action":  ev.Action,
		"type":    ev.messageType(),
		"user_id": ev.userID(),
		"id":      ev.eventID(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
