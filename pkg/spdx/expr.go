// Package spdx parses SPDX license expressions into owned expression trees
// and folds risk or policy results over them.
package spdx

// Expr is a node in a parsed license expression tree. Trees are immutable
// once built and owned by the dependency they were parsed for.
type Expr interface {
	// String renders the expression with minimal parentheses, including
	// WITH clauses.
	String() string
	// Canonical renders the expression with WITH clauses stripped; this is
	// the form used for classification and policy lookup.
	Canonical() string
}

// Leaf is a single license identifier.
type Leaf struct {
	ID string
}

func (l Leaf) String() string    { return l.ID }
func (l Leaf) Canonical() string { return l.ID }

// With attaches an exception to an inner identifier, e.g.
// "GPL-2.0 WITH Classpath-exception-2.0". The exception is display
// metadata only; lookups use the inner identifier.
type With struct {
	Inner     Expr
	Exception string
}

func (w With) String() string    { return w.Inner.String() + " WITH " + w.Exception }
func (w With) Canonical() string { return w.Inner.Canonical() }

// And requires both branches to be satisfied.
type And struct {
	Left, Right Expr
}

func (a And) String() string {
	return andOperand(a.Left, false) + " AND " + andOperand(a.Right, false)
}

func (a And) Canonical() string {
	return andOperand(a.Left, true) + " AND " + andOperand(a.Right, true)
}

// Or lets the consumer choose either branch.
type Or struct {
	Left, Right Expr
}

func (o Or) String() string {
	return render(o.Left, false) + " OR " + render(o.Right, false)
}

func (o Or) Canonical() string {
	return render(o.Left, true) + " OR " + render(o.Right, true)
}

// andOperand parenthesizes OR children of an AND node, since AND binds
// tighter than OR.
func andOperand(e Expr, canonical bool) string {
	s := render(e, canonical)
	if _, ok := e.(Or); ok {
		return "(" + s + ")"
	}
	return s
}

func render(e Expr, canonical bool) string {
	if canonical {
		return e.Canonical()
	}
	return e.String()
}

// Fold combines per-leaf results over the tree: OR picks the lower (more
// favorable) of its branches, AND picks the higher (more restrictive).
// The same algebra serves risk tiers and policy verdicts; rank defines the
// ordering and leaf produces the value for one identifier.
func Fold[T any](e Expr, leaf func(id string) T, rank func(T) int) T {
	switch n := e.(type) {
	case Leaf:
		return leaf(n.ID)
	case With:
		return Fold(n.Inner, leaf, rank)
	case And:
		l := Fold(n.Left, leaf, rank)
		r := Fold(n.Right, leaf, rank)
		if rank(l) >= rank(r) {
			return l
		}
		return r
	case Or:
		l := Fold(n.Left, leaf, rank)
		r := Fold(n.Right, leaf, rank)
		if rank(l) <= rank(r) {
			return l
		}
		return r
	default:
		return leaf("unknown")
	}
}

// Identifiers returns the canonical identifiers of every leaf, in order.
func Identifiers(e Expr) []string {
	var ids []string
	collect(e, &ids)
	return ids
}

func collect(e Expr, ids *[]string) {
	switch n := e.(type) {
	case Leaf:
		*ids = append(*ids, n.ID)
	case With:
		collect(n.Inner, ids)
	case And:
		collect(n.Left, ids)
		collect(n.Right, ids)
	case Or:
		collect(n.Left, ids)
		collect(n.Right, ids)
	}
}

// Equal reports structural equality of two expression trees. Rendering is
// injective over trees, so comparing rendered forms is sufficient.
func Equal(a, b Expr) bool {
	return a != nil && b != nil && a.String() == b.String()
}
