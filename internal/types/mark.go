package types

import (
	"fmt"

	"github.com/funvibe/kailua/internal/config"
)

// Mark is a unification variable ranging over the choice between two
// slot flavors (Var-or-Const, or Var-or-Currently). Marks are allocated
// and resolved by a MarkContext, a union-find table separate from the
// TVar bound store: see TypeContext.Marks.
type Mark uint32

func (m Mark) String() string {
	if config.IsTestMode {
		return "m?"
	}
	return fmt.Sprintf("m%d", m)
}

// FlavorChoice is the concrete resolution a Mark converges to.
type FlavorChoice int

const (
	ChoiceUnresolved FlavorChoice = iota
	ChoiceVar
	ChoiceConst
	ChoiceCurrently
)

type markNode struct {
	parent Mark // == self when this node is the representative
	choice FlavorChoice
}

// MarkContext is the union-find table backing slot-flavor Marks. Each
// mark maps to either another mark (path compression) or resolves to a
// concrete flavor choice; see spec §9 "Slot flavor marks".
type MarkContext struct {
	nodes []markNode
}

func NewMarkContext() *MarkContext { return &MarkContext{} }

// Gen allocates a fresh, unresolved mark.
func (c *MarkContext) Gen() Mark {
	id := Mark(len(c.nodes))
	c.nodes = append(c.nodes, markNode{parent: id, choice: ChoiceUnresolved})
	return id
}

// find returns the representative mark for m, compressing the path.
func (c *MarkContext) find(m Mark) Mark {
	if c.nodes[m].parent == m {
		return m
	}
	root := c.find(c.nodes[m].parent)
	c.nodes[m].parent = root
	return root
}

// Choice reports the current resolution of m's class, if any.
func (c *MarkContext) Choice(m Mark) FlavorChoice {
	return c.nodes[c.find(m)].choice
}

// AssertChoice resolves m's class to choice, failing if already resolved
// to a different one.
func (c *MarkContext) AssertChoice(m Mark, choice FlavorChoice) error {
	root := c.find(m)
	cur := c.nodes[root].choice
	if cur == ChoiceUnresolved {
		c.nodes[root].choice = choice
		return nil
	}
	if cur != choice {
		return &CannotResolveMarkError{Mark: m}
	}
	return nil
}

// Unify merges a's and b's classes, failing if both are already resolved
// to different concrete choices.
func (c *MarkContext) Unify(a, b Mark) error {
	ra, rb := c.find(a), c.find(b)
	if ra == rb {
		return nil
	}
	ca, cb := c.nodes[ra].choice, c.nodes[rb].choice
	switch {
	case ca == ChoiceUnresolved:
		c.nodes[ra].parent = rb
	case cb == ChoiceUnresolved:
		c.nodes[rb].parent = ra
		c.nodes[ra].choice = ca
	case ca == cb:
		c.nodes[rb].parent = ra
	default:
		return &CannotResolveMarkError{Mark: a}
	}
	return nil
}
