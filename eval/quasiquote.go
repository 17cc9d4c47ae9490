package eval

import (
	. "github.com/bshepherdson/mal/types"
)

// Quasiquote rewrites a quasiquoted form into code that builds it. It does
// not evaluate anything itself.
func Quasiquote(ast Data) Data {
	switch a := ast.(type) {
	case *DVector:
		return list(sym("vec"), qqList(a.Members))

	case *DList:
		if len(a.Members) == 0 {
			return ast
		}
		if IsSymbol(a.Members[0], "unquote") && len(a.Members) > 1 {
			return a.Members[1]
		}
		return qqList(a.Members)

	case *DHashMap, DSymbol:
		return list(sym("quote"), ast)
	}
	return ast
}

// qqList folds from the right, splicing splice-unquote elements with concat
// and consing the rest.
func qqList(elts []Data) Data {
	acc := Data(NewList())
	for i := len(elts) - 1; i >= 0; i-- {
		elt := elts[i]
		if l, ok := elt.(*DList); ok && len(l.Members) > 1 && IsSymbol(l.Members[0], "splice-unquote") {
			acc = list(sym("concat"), l.Members[1], acc)
			continue
		}
		acc = list(sym("cons"), Quasiquote(elt), acc)
	}
	return acc
}

func list(elements ...Data) Data {
	return NewList(elements...)
}

func sym(symbol string) Data {
	return DSymbol(symbol)
}
