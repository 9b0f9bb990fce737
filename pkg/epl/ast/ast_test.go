package ast

import (
	"errors"
	"testing"
)

func sampleTree() *Document {
	return &Document{
		Name: "sample.epl",
		Nodes: []Node{
			&TextNode{Content: "You are "},
			&VariableNode{Name: "role"},
			&ConditionalNode{
				Condition: &AndCond{
					Left:  &VariableRefCond{Name: "premium"},
					Right: &JudgeCond{Value: "bio", ValueIsRef: true, Question: "Is this an engineer?"},
				},
				Then: []Node{&TextNode{Content: "gold"}},
				Else: []Node{&VariableNode{Name: "fallback"}},
			},
			&SectionNode{
				Name:     "rules",
				Children: []Node{&VariableNode{Name: "role"}},
			},
		},
	}
}

func TestWalkVisitsBothBranches(t *testing.T) {
	var kinds []NodeKind
	err := Walk(sampleTree(), VisitorFunc(func(n Node) error {
		kinds = append(kinds, n.Kind())
		return nil
	}))
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	want := []NodeKind{
		KindDocument, KindText, KindVariable,
		KindConditional, KindText, KindVariable,
		KindSection, KindVariable,
	}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visit %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestWalkStopsOnError(t *testing.T) {
	sentinel := errors.New("stop")
	visited := 0
	err := Walk(sampleTree(), VisitorFunc(func(n Node) error {
		visited++
		if visited == 3 {
			return sentinel
		}
		return nil
	}))
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}
	if visited != 3 {
		t.Errorf("visited = %d, want 3", visited)
	}
}

func TestCollectJudgeConditions(t *testing.T) {
	judges := CollectJudgeConditions(sampleTree())
	if len(judges) != 1 {
		t.Fatalf("judge count = %d, want 1", len(judges))
	}
	if judges[0].Question != "Is this an engineer?" {
		t.Errorf("question = %q", judges[0].Question)
	}
}

func TestCollectVariablesDedupes(t *testing.T) {
	vars := CollectVariables(sampleTree())
	want := []string{"role", "fallback"}
	if len(vars) != len(want) {
		t.Fatalf("variables = %v, want %v", vars, want)
	}
	for i := range want {
		if vars[i] != want[i] {
			t.Errorf("variable %d = %q, want %q", i, vars[i], want[i])
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := sampleTree()
	copied := Clone(original).(*Document)

	// Mutating the copy must not reach the original.
	copied.Nodes[0].(*TextNode).Content = "changed"
	copied.Nodes[2].(*ConditionalNode).Then[0].(*TextNode).Content = "changed"

	if original.Nodes[0].(*TextNode).Content != "You are " {
		t.Error("clone shares text node with original")
	}
	if original.Nodes[2].(*ConditionalNode).Then[0].(*TextNode).Content != "gold" {
		t.Error("clone shares conditional branch with original")
	}

	if PrettyPrint(Clone(original)) != PrettyPrint(original) {
		t.Error("clone is not structure-preserving")
	}
}

func TestCanonicalIsOrderStable(t *testing.T) {
	a := map[string]any{"b": 2, "a": []any{"x", true}, "c": "s"}
	b := map[string]any{"c": "s", "a": []any{"x", true}, "b": 2}

	ca, err := Canonical(a)
	if err != nil {
		t.Fatalf("canonical failed: %v", err)
	}
	cb, err := Canonical(b)
	if err != nil {
		t.Fatalf("canonical failed: %v", err)
	}
	if ca != cb {
		t.Errorf("canonical forms differ:\n%s\n%s", ca, cb)
	}
}

func TestCanonicalRejectsUnsupportedTypes(t *testing.T) {
	if _, err := Canonical(struct{}{}); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		hint  TypeHint
		want  string
	}{
		{"string", "hello", HintNone, "hello"},
		{"bool", true, HintNone, "true"},
		{"float", 0.5, HintNone, "0.5"},
		{"int with number hint", 3, HintNumber, "3"},
		{"bool with boolean hint", false, HintBoolean, "false"},
		{"inapplicable hint falls back", "text", HintNumber, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.value, tt.hint); got != tt.want {
				t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.hint, got, tt.want)
			}
		})
	}
}

func TestFormatCondition(t *testing.T) {
	expr := &OrCond{
		Left: &NotCond{Expr: &VariableRefCond{Name: "a"}},
		Right: &AndCond{
			Left:  &LiteralCond{Value: true},
			Right: &ContextPresenceCond{Path: "plp://docs/x"},
		},
	}
	want := `(!a || (true && context("plp://docs/x")))`
	if got := FormatCondition(expr); got != want {
		t.Errorf("FormatCondition = %s, want %s", got, want)
	}
}
