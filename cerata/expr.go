package cerata

import "strconv"

// nodeEqual reports whether a and b are the same node (by identity) or two
// Literal nodes carrying the same value. It is used only by the expression
// minimizer to recognize self-subtraction (x-x) and similar identities; it
// is deliberately not a general node-equality predicate.
func nodeEqual(a, b Node) bool {
	if a == b {
		return true
	}
	la, oka := a.(*Literal)
	lb, okb := b.(*Literal)
	if oka && okb {
		return la.IsBool == lb.IsBool && la.IsString == lb.IsString &&
			la.BoolValue == lb.BoolValue && la.StringValue == lb.StringValue && la.IntValue == lb.IntValue
	}
	return false
}

func isIntLiteral(n Node) (int64, bool) {
	if l, ok := n.(*Literal); ok && !l.IsBool && !l.IsString {
		return l.IntValue, true
	}
	return 0, false
}

func isZero(n Node) bool {
	v, ok := isIntLiteral(n)
	return ok && v == 0
}

func isOne(n Node) bool {
	v, ok := isIntLiteral(n)
	return ok && v == 1
}

// Minimize applies the standard algebraic identities and constant folding
// to an expression tree, recursively, before string rendering (spec.md
// §4.2). Minimize is idempotent: Minimize(Minimize(e)) == Minimize(e)
// structurally (spec.md §8), since every rewrite rule below strictly
// reduces the tree or leaves it fixed.
func Minimize(n Node) Node {
	e, ok := n.(*Expression)
	if !ok {
		return n
	}

	lhs := Minimize(e.Lhs)
	rhs := Minimize(e.Rhs)

	if lv, lok := isIntLiteral(lhs); lok {
		if rv, rok := isIntLiteral(rhs); rok {
			return foldConstants(e.Op, lv, rv, e.typ)
		}
	}

	switch e.Op {
	case OpAdd:
		if isZero(lhs) {
			return rhs
		}
		if isZero(rhs) {
			return lhs
		}
	case OpSub:
		if isZero(rhs) {
			return lhs
		}
		if nodeEqual(lhs, rhs) {
			return NewLiteralTyped(0, e.typ)
		}
	case OpMul:
		if isOne(lhs) {
			return rhs
		}
		if isOne(rhs) {
			return lhs
		}
		if isZero(lhs) || isZero(rhs) {
			return NewLiteralTyped(0, e.typ)
		}
	case OpDiv:
		if isOne(rhs) {
			return lhs
		}
		if nodeEqual(lhs, rhs) {
			return NewLiteralTyped(1, e.typ)
		}
	}

	if lhs == e.Lhs && rhs == e.Rhs {
		return e
	}
	return NewExpression(e.Op, lhs, rhs)
}

func foldConstants(op ExprOp, lv, rv int64, t *Type) Node {
	var result int64
	switch op {
	case OpAdd:
		result = lv + rv
	case OpSub:
		result = lv - rv
	case OpMul:
		result = lv * rv
	case OpDiv:
		if rv == 0 {
			return NewExpression(op, NewLiteralTyped(lv, t), NewLiteralTyped(rv, t))
		}
		result = lv / rv
	}
	return NewLiteralTyped(result, t)
}

// ToString renders n as infix text, parenthesizing according to operator
// precedence (spec.md §4.2). Parameters resolve through their bound value
// or default before rendering; an unbound, default-less Parameter renders
// as its free generic name.
func ToString(n Node) string {
	return toString(n, 0)
}

func toString(n Node, parentPrec int) string {
	switch v := n.(type) {
	case *Literal:
		switch {
		case v.IsBool:
			if v.BoolValue {
				return "true"
			}
			return "false"
		case v.IsString:
			return strconv.Quote(v.StringValue)
		default:
			return strconv.FormatInt(v.IntValue, 10)
		}
	case *Parameter:
		resolved := v.Resolve()
		if resolved == Node(v) {
			return v.name
		}
		return toString(resolved, parentPrec)
	case *Port:
		return v.name
	case *Signal:
		return v.name
	case *Expression:
		prec := v.Op.precedence()
		s := toString(v.Lhs, prec) + " " + v.Op.String() + " " + toString(v.Rhs, prec+1)
		if prec < parentPrec {
			return "(" + s + ")"
		}
		return s
	default:
		return "?"
	}
}
