package types

import "reflect"

// tvarNode holds one type variable's monotone bounds and its outgoing
// sub-edges (spec §4.4, §9 "tvar → (lower, upper, outgoing edges)").
type tvarNode struct {
	lower T
	upper T
	edges []TVar // v ≤ edges[i], for each i
}

// TypeContext owns every TVar's bound pair and the Mark union-find
// table (spec §4.4, §9). Identifiers are never reused within a single
// context (spec §5).
type TypeContext struct {
	tvars []tvarNode
	Marks *MarkContext
}

func NewTypeContext() *TypeContext {
	return &TypeContext{Marks: NewMarkContext()}
}

// GenTVar allocates a fresh type variable with unconstrained bounds
// (None, Dynamic).
func (c *TypeContext) GenTVar() TVar {
	id := TVar(len(c.tvars))
	c.tvars = append(c.tvars, tvarNode{lower: None(), upper: Dynamic()})
	return id
}

// GenMark allocates a fresh, unresolved slot-flavor mark.
func (c *TypeContext) GenMark() Mark { return c.Marks.Gen() }

func (c *TypeContext) AssertMarkVar(m Mark) error {
	return c.Marks.AssertChoice(m, ChoiceVar)
}
func (c *TypeContext) AssertMarkConst(m Mark) error {
	return c.Marks.AssertChoice(m, ChoiceConst)
}
func (c *TypeContext) AssertMarkCurrently(m Mark) error {
	return c.Marks.AssertChoice(m, ChoiceCurrently)
}
func (c *TypeContext) AssertMarkEq(a, b Mark) error { return c.Marks.Unify(a, b) }

// Bounds returns v's current (lower, upper) pair.
func (c *TypeContext) Bounds(v TVar) (lower, upper T) {
	n := &c.tvars[v]
	return n.lower, n.upper
}

// AssertTVarSub refines upper(v) := upper(v) ∩ upper_t. Fails if the
// refined upper bound no longer admits lower(v).
func (c *TypeContext) AssertTVarSub(v TVar, upperT T) error {
	n := &c.tvars[v]
	newUpper := meet(n.upper, upperT)
	if incompatibleMeet(n.upper, upperT, newUpper) {
		return &TypeMismatchError{Got: n.upper, Expected: upperT, Op: OpSub}
	}
	n.upper = newUpper
	if err := c.checkConsistent(v); err != nil {
		return err
	}
	return c.saturate()
}

// incompatibleMeet reports whether meet(a, b) collapsed to None only
// because a and b are unrelated (e.g. integer vs. string), as opposed to
// either operand already being None — the latter is a valid unconstrained
// starting bound, not a failure.
func incompatibleMeet(a, b, result T) bool {
	return result.Kind == TNone && a.Kind != TNone && b.Kind != TNone
}

// AssertTVarSup refines lower(v) := lower(v) ∪ lower_t.
func (c *TypeContext) AssertTVarSup(v TVar, lowerT T) error {
	n := &c.tvars[v]
	joined, err := n.lower.Union(c, lowerT)
	if err != nil {
		return err
	}
	n.lower = joined
	if err := c.checkConsistent(v); err != nil {
		return err
	}
	return c.saturate()
}

// AssertTVarEq combines both refinements.
func (c *TypeContext) AssertTVarEq(v TVar, t T) error {
	if err := c.AssertTVarSub(v, t); err != nil {
		return err
	}
	return c.AssertTVarSup(v, t)
}

// AssertTVarSubTVar adds the edge a ≤ b and propagates:
// upper(a) := upper(a) ∩ upper(b), lower(b) := lower(b) ∪ lower(a).
func (c *TypeContext) AssertTVarSubTVar(a, b TVar) error {
	c.tvars[a].edges = append(c.tvars[a].edges, b)
	return c.saturate()
}

// AssertTVarEqTVar unifies two type variables by adding edges in both
// directions.
func (c *TypeContext) AssertTVarEqTVar(a, b TVar) error {
	if err := c.AssertTVarSubTVar(a, b); err != nil {
		return err
	}
	return c.AssertTVarSubTVar(b, a)
}

func (c *TypeContext) checkConsistent(v TVar) error {
	n := &c.tvars[v]
	if !pureSub(n.lower, n.upper) {
		return &TypeMismatchError{Got: n.lower, Expected: n.upper, Op: OpSub}
	}
	return nil
}

// saturate is the saturating fixed-point propagation loop of spec §4.4:
// re-check every outgoing edge whenever a bound tightens, until nothing
// changes. Cycles terminate because each pass either changes a bound or
// the loop exits; a bound can only tighten finitely many times before
// reaching None/Dynamic-free fixed shapes.
func (c *TypeContext) saturate() error {
	changed := true
	for changed {
		changed = false
		for i := range c.tvars {
			a := TVar(i)
			for _, b := range c.tvars[i].edges {
				na, nb := &c.tvars[a], &c.tvars[b]
				newUpperA := meet(na.upper, nb.upper)
				if incompatibleMeet(na.upper, nb.upper, newUpperA) {
					return &TypeMismatchError{Got: na.upper, Expected: nb.upper, Op: OpSub}
				}
				newLowerB, err := nb.lower.Union(c, na.lower)
				if err != nil {
					return err
				}
				if !sameT(na.upper, newUpperA) {
					na.upper = newUpperA
					changed = true
				}
				if !sameT(nb.lower, newLowerB) {
					nb.lower = newLowerB
					changed = true
				}
				if err := c.checkConsistent(a); err != nil {
					return err
				}
				if err := c.checkConsistent(b); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func sameT(a, b T) bool { return reflect.DeepEqual(a, b) }

// containsTVar reports whether t mentions a type variable anywhere at
// the top level relevant to bound comparison (enough for meet/pureSub's
// purposes: bounds are rarely deeply tvar-nested before resolution).
func containsTVar(t T) bool {
	switch t.Kind {
	case TTVar:
		return true
	case TBuiltin:
		return containsTVar(*t.BuiltinInner)
	case TUnion:
		return t.UnionVal.TVarID != nil
	default:
		return false
	}
}

// pureSub is a context-free subtype check used only for bound
// refinement (meet/consistency checks): it never delegates to a
// TypeContext, so a TVar on either side falls back to a conservative
// Dynamic/None-only answer rather than risking a nil context dereference.
func pureSub(a, b T) bool {
	if containsTVar(a) || containsTVar(b) {
		if b.Kind == TDynamic || a.Kind == TNone {
			return true
		}
		return false
	}
	return a.AssertSub(nil, b) == nil
}

// meet computes a conservative greatest-lower-bound used to refine a
// TVar's upper bound: if the two constraints are related by subtyping,
// the narrower one wins; otherwise (incomparable, as with integer vs.
// string) they admit nothing in common and the bound collapses to None,
// which the callers report as a failure through incompatibleMeet,
// whatever lower(v) is.
func meet(a, b T) T {
	if a.Kind == TDynamic {
		return b
	}
	if b.Kind == TDynamic {
		return a
	}
	if a.Kind == TNone || b.Kind == TNone {
		return None()
	}
	if pureSub(a, b) {
		return a
	}
	if pureSub(b, a) {
		return b
	}
	return None()
}
