package ast

// ConditionKind identifies the variant of a condition expression.
type ConditionKind string

const (
	CondLiteral         ConditionKind = "literal"
	CondVariableRef     ConditionKind = "variable_ref"
	CondNot             ConditionKind = "not"
	CondAnd             ConditionKind = "and"
	CondOr              ConditionKind = "or"
	CondJudge           ConditionKind = "judge"
	CondContextPresence ConditionKind = "context_presence"
)

// ConditionExpr is a node in a condition expression tree. Unlike template nodes,
// conditions form an expression tree, not a node list.
type ConditionExpr interface {
	CondKind() ConditionKind
	Loc() Location
}

// LiteralCond is a boolean literal (true / false).
type LiteralCond struct {
	Value    bool
	Location Location
}

func (c *LiteralCond) CondKind() ConditionKind { return CondLiteral }
func (c *LiteralCond) Loc() Location           { return c.Location }

// VariableRefCond references a variable binding by name. The bound value must be
// a boolean (or a string parseable as one) when the condition is evaluated.
type VariableRefCond struct {
	Name     string
	Location Location
}

func (c *VariableRefCond) CondKind() ConditionKind { return CondVariableRef }
func (c *VariableRefCond) Loc() Location           { return c.Location }

// NotCond negates its operand.
type NotCond struct {
	Expr     ConditionExpr
	Location Location
}

func (c *NotCond) CondKind() ConditionKind { return CondNot }
func (c *NotCond) Loc() Location           { return c.Location }

// AndCond is the conjunction of two operands.
type AndCond struct {
	Left     ConditionExpr
	Right    ConditionExpr
	Location Location
}

func (c *AndCond) CondKind() ConditionKind { return CondAnd }
func (c *AndCond) Loc() Location           { return c.Location }

// OrCond is the disjunction of two operands.
type OrCond struct {
	Left     ConditionExpr
	Right    ConditionExpr
	Location Location
}

func (c *OrCond) CondKind() ConditionKind { return CondOr }
func (c *OrCond) Loc() Location           { return c.Location }

// JudgeCond is an AI-judged predicate: judge(value, "question"). The value
// expression is resolved against the bindings and submitted, together with the
// question, to the AI-judge capability for a yes/no answer.
type JudgeCond struct {
	// Value is the judged value expression: either a variable name or a string
	// literal, distinguished by ValueIsRef.
	Value      string
	ValueIsRef bool

	// Question is the free-text yes/no question asked about the value.
	Question string

	Location Location
}

func (c *JudgeCond) CondKind() ConditionKind { return CondJudge }
func (c *JudgeCond) Loc() Location           { return c.Location }

// ContextPresenceCond is a context-presence predicate: context("plp://…").
// It is true when the referenced context path resolved to content during the
// batched pre-resolution phase. It never issues its own network call.
type ContextPresenceCond struct {
	Path     string
	Location Location
}

func (c *ContextPresenceCond) CondKind() ConditionKind { return CondContextPresence }
func (c *ContextPresenceCond) Loc() Location           { return c.Location }
