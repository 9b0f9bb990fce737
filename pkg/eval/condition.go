package eval

import (
	"context"
	"fmt"
	"strconv"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/contextref"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/ast"
	eplerrors "github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/errors"
)

// evalCondition evaluates one condition expression against the
// context-augmented bindings. Boolean combinators short-circuit, which keeps
// the "unselected work never fires" guarantee for judged predicates on the
// right-hand side of && and ||.
func (e *Evaluator) evalCondition(ctx context.Context, expr ast.ConditionExpr, bindings map[string]any, resolved contextref.Resolved) (bool, error) {
	switch cond := expr.(type) {
	case *ast.LiteralCond:
		return cond.Value, nil

	case *ast.VariableRefCond:
		return e.evalVariableRef(cond, bindings)

	case *ast.NotCond:
		v, err := e.evalCondition(ctx, cond.Expr, bindings, resolved)
		if err != nil {
			return false, err
		}
		return !v, nil

	case *ast.AndCond:
		left, err := e.evalCondition(ctx, cond.Left, bindings, resolved)
		if err != nil {
			return false, err
		}
		if !left {
			return false, nil
		}
		return e.evalCondition(ctx, cond.Right, bindings, resolved)

	case *ast.OrCond:
		left, err := e.evalCondition(ctx, cond.Left, bindings, resolved)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return e.evalCondition(ctx, cond.Right, bindings, resolved)

	case *ast.JudgeCond:
		return e.evalJudge(ctx, cond, bindings)

	case *ast.ContextPresenceCond:
		return e.evalContextPresence(cond, resolved)

	default:
		return false, &eplerrors.Error{
			Type:     eplerrors.ErrorTypeEvaluation,
			Message:  fmt.Sprintf("unsupported condition kind %q", expr.CondKind()),
			Location: expr.Loc(),
		}
	}
}

// evalVariableRef evaluates a bare identifier condition. The bound value must
// be a boolean or a string that parses as one.
func (e *Evaluator) evalVariableRef(cond *ast.VariableRefCond, bindings map[string]any) (bool, error) {
	value, ok := bindings[cond.Name]
	if !ok {
		return false, &eplerrors.Error{
			Type:       eplerrors.ErrorTypeEvaluation,
			Message:    fmt.Sprintf("unknown variable %q in condition", cond.Name),
			Location:   cond.Location,
			Suggestion: fmt.Sprintf("bind %q or remove it from the condition", cond.Name),
		}
	}

	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return false, &eplerrors.Error{
				Type:     eplerrors.ErrorTypeEvaluation,
				Message:  fmt.Sprintf("variable %q has non-boolean value %q in condition", cond.Name, v),
				Location: cond.Location,
			}
		}
		return parsed, nil
	default:
		return false, &eplerrors.Error{
			Type:     eplerrors.ErrorTypeEvaluation,
			Message:  fmt.Sprintf("variable %q has non-boolean value of type %T in condition", cond.Name, value),
			Location: cond.Location,
		}
	}
}

// evalJudge resolves the judged value against the bindings and asks the AI
// judge. This is the only place phase-two evaluation suspends for an LLM
// call.
func (e *Evaluator) evalJudge(ctx context.Context, cond *ast.JudgeCond, bindings map[string]any) (bool, error) {
	if e.judge == nil {
		return false, &eplerrors.Error{
			Type:       eplerrors.ErrorTypeEvaluation,
			Message:    "judge() predicate reached but no judge is configured",
			Location:   cond.Location,
			Suggestion: "configure a judge provider or remove the judge() predicate",
		}
	}

	var value any = cond.Value
	if cond.ValueIsRef {
		bound, ok := bindings[cond.Value]
		if !ok {
			return false, &eplerrors.Error{
				Type:     eplerrors.ErrorTypeEvaluation,
				Message:  fmt.Sprintf("unknown variable %q in judge() predicate", cond.Value),
				Location: cond.Location,
			}
		}
		value = bound
	}

	canonical, err := ast.Canonical(value)
	if err != nil {
		return false, &eplerrors.Error{
			Type:     eplerrors.ErrorTypeEvaluation,
			Message:  fmt.Sprintf("judge() value cannot be serialized: %v", err),
			Location: cond.Location,
		}
	}

	verdict, err := e.judge.Evaluate(ctx, canonical, cond.Question)
	if err != nil {
		return false, &eplerrors.Error{
			Type:     eplerrors.ErrorTypeResolution,
			Message:  fmt.Sprintf("judge call failed: %v", err),
			Location: cond.Location,
		}
	}
	return verdict, nil
}

// evalContextPresence consults the phase-one resolution map. A missing asset
// is false; any other resolution failure for a path the document actually
// tests aborts evaluation.
func (e *Evaluator) evalContextPresence(cond *ast.ContextPresenceCond, resolved contextref.Resolved) (bool, error) {
	if err := contextref.ValidatePath(cond.Path); err != nil {
		return false, &eplerrors.Error{
			Type:     eplerrors.ErrorTypeValidation,
			Message:  fmt.Sprintf("invalid context path in condition: %v", err),
			Location: cond.Location,
		}
	}

	res := resolved.Lookup(cond.Path)
	if res.Err == nil {
		return true, nil
	}
	if contextref.IsNotFound(res.Err) {
		return false, nil
	}
	return false, &eplerrors.Error{
		Type:     eplerrors.ErrorTypeResolution,
		Message:  fmt.Sprintf("context path %q failed to resolve: %v", cond.Path, res.Err),
		Location: cond.Location,
	}
}
