package condition

import (
	"fmt"
	"strings"

	"github.com/poiesic/filescout/core"
)

// Outcome is the result of evaluating a condition against one file.
// Captures holds the named values recorded by leaves that were actually
// evaluated and matched; short-circuited leaves contribute nothing.
type Outcome struct {
	Matched  bool
	Captures []core.Capture
}

// Condition is a composable boolean predicate over a file.
//
// Evaluate must be a pure function of the file and the condition's own
// configuration: no hidden cross-file state, so different files may be
// evaluated by different runs concurrently. Captures are returned explicitly
// in the Outcome rather than accumulated on shared state.
type Condition interface {
	// Evaluate reports whether the file satisfies the condition.
	Evaluate(file *core.FileRef) (Outcome, error)

	// CaptureNames lists the capture names this condition can expose, in
	// declaration order. The list is fixed at configuration time.
	CaptureNames() []string

	// String describes the condition for logging and run metadata.
	String() string
}

// And returns a condition satisfied when every child is satisfied.
// Children are evaluated left to right and evaluation stops at the first
// false child; captures from short-circuited children are never recorded.
func And(children ...Condition) Condition {
	return &nary{op: "and", children: children}
}

// Or returns a condition satisfied when any child is satisfied.
// Children are evaluated left to right and evaluation stops at the first
// true child.
func Or(children ...Condition) Condition {
	return &nary{op: "or", children: children}
}

type nary struct {
	op       string
	children []Condition
}

func (c *nary) Evaluate(file *core.FileRef) (Outcome, error) {
	if len(c.children) == 0 {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNoChildren, c.op)
	}

	stop := c.op == "or" // short-circuit value
	out := Outcome{Matched: !stop}
	for _, child := range c.children {
		res, err := child.Evaluate(file)
		if err != nil {
			return Outcome{}, err
		}
		out.Captures = append(out.Captures, res.Captures...)
		if res.Matched == stop {
			out.Matched = stop
			break
		}
	}
	return out, nil
}

func (c *nary) CaptureNames() []string {
	var names []string
	for _, child := range c.children {
		names = append(names, child.CaptureNames()...)
	}
	return names
}

func (c *nary) String() string {
	parts := make([]string, len(c.children))
	for i, child := range c.children {
		parts[i] = child.String()
	}
	return "(" + strings.Join(parts, " "+c.op+" ") + ")"
}

// Not returns a condition satisfied when the child is not satisfied.
// Captures recorded by the child are discarded: a negated match exposes no
// values.
func Not(child Condition) Condition {
	return &not{child: child}
}

type not struct {
	child Condition
}

func (c *not) Evaluate(file *core.FileRef) (Outcome, error) {
	res, err := c.child.Evaluate(file)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Matched: !res.Matched}, nil
}

func (c *not) CaptureNames() []string { return nil }

func (c *not) String() string { return "not " + c.child.String() }

// NewFunc wraps a plain predicate function as a named leaf without captures.
// It is the extension point for pluggable leaf predicates.
func NewFunc(name string, eval func(file *core.FileRef) (bool, error)) (Condition, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if eval == nil {
		return nil, ErrNilPredicate
	}
	return &funcLeaf{name: name, eval: eval}, nil
}

type funcLeaf struct {
	name string
	eval func(file *core.FileRef) (bool, error)
}

func (c *funcLeaf) Evaluate(file *core.FileRef) (Outcome, error) {
	ok, err := c.eval(file)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Matched: ok}, nil
}

func (c *funcLeaf) CaptureNames() []string { return nil }

func (c *funcLeaf) String() string { return c.name }
