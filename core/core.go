// Package core holds the primitive functions bound in the root environment.
package core

import (
	"io"
	"time"

	. "github.com/bshepherdson/mal/types"
)

// LineReader prompts for one line of input. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

type namespace struct {
	out io.Writer
	in  LineReader
}

// NS returns the primitives by name. Printing primitives write to out;
// readline reads from in.
func NS(out io.Writer, in LineReader) map[string]Func {
	n := &namespace{out: out, in: in}
	return map[string]Func{
		"+": plus,
		"-": minus,
		"*": times,
		"/": div,

		// Comparisons
		"=":  equal,
		"<":  compare("<", func(x, y int) bool { return x < y }),
		"<=": compare("<=", func(x, y int) bool { return x <= y }),
		">":  compare(">", func(x, y int) bool { return x > y }),
		">=": compare(">=", func(x, y int) bool { return x >= y }),

		// Predicates
		"nil?":        is(func(d Data) bool { _, ok := d.(DNil); return ok }),
		"true?":       is(func(d Data) bool { return d == True }),
		"false?":      is(func(d Data) bool { return d == False }),
		"symbol?":     is(func(d Data) bool { _, ok := d.(DSymbol); return ok }),
		"keyword?":    is(func(d Data) bool { _, ok := d.(DKeyword); return ok }),
		"string?":     is(func(d Data) bool { _, ok := d.(DString); return ok }),
		"number?":     is(func(d Data) bool { _, ok := d.(DNumber); return ok }),
		"fn?":         is(IsCallable),
		"macro?":      is(func(d Data) bool { c, ok := d.(*DClosure); return ok && c.IsMacro }),
		"list?":       is(func(d Data) bool { _, ok := d.(*DList); return ok }),
		"vector?":     is(func(d Data) bool { _, ok := d.(*DVector); return ok }),
		"sequential?": is(func(d Data) bool { _, ok := Seq(d); return ok }),
		"map?":        is(func(d Data) bool { _, ok := d.(*DHashMap); return ok }),
		"atom?":       is(func(d Data) bool { _, ok := d.(*DAtom); return ok }),

		// Constructors
		"symbol":  symbol,
		"keyword": keyword,

		// Atoms
		"atom":   atom,
		"deref":  deref,
		"reset!": atomReset,
		"swap!":  atomSwap,

		// Lists
		"list":   mkList,
		"vector": mkVector,
		"vec":    vec,
		"empty?": emptyQ,
		"count":  count,
		"cons":   cons,
		"concat": concat,
		"conj":   conj,
		"seq":    seq,
		"nth":    nth,
		"first":  first,
		"rest":   rest,
		"apply":  apply,
		"map":    mapFn,

		// Hash maps
		"hash-map":  hashMap,
		"assoc":     assoc,
		"dissoc":    dissoc,
		"get":       get,
		"contains?": containsQ,
		"keys":      keys,
		"vals":      vals,

		// Input
		"read-string": readString,
		"slurp":       slurp,
		"readline":    n.readline,

		// Output
		"pr-str":  prStr,
		"str":     fStr,
		"prn":     n.prn,
		"println": n.println,

		// Errors and metadata
		"throw":     throw,
		"meta":      meta,
		"with-meta": withMeta,

		"time-ms": timeMs,
	}
}

func arity(name string, args []Data, n int) error {
	if len(args) != n {
		return Errorf(TypeError, "%s expects %d arguments, got %d", name, n, len(args))
	}
	return nil
}

func number(name string, d Data) (int, error) {
	n, ok := d.(DNumber)
	if !ok {
		return 0, Errorf(TypeError, "arguments to %s must be numbers, got %s", name, TypeName(d))
	}
	return int(n), nil
}

func numbers(name string, args []Data) ([]int, error) {
	ns := make([]int, len(args))
	for i, a := range args {
		n, err := number(name, a)
		if err != nil {
			return nil, err
		}
		ns[i] = n
	}
	return ns, nil
}

func plus(args []Data) (Data, error) {
	ns, err := numbers("+", args)
	if err != nil {
		return nil, err
	}
	sum := 0
	for _, n := range ns {
		sum += n
	}
	return DNumber(sum), nil
}

func times(args []Data) (Data, error) {
	ns, err := numbers("*", args)
	if err != nil {
		return nil, err
	}
	product := 1
	for _, n := range ns {
		product *= n
	}
	return DNumber(product), nil
}

// minus negates a single argument and subtracts the rest from the first.
func minus(args []Data) (Data, error) {
	ns, err := numbers("-", args)
	if err != nil {
		return nil, err
	}
	switch len(ns) {
	case 0:
		return nil, Errorf(TypeError, "- expects at least 1 argument")
	case 1:
		return DNumber(-ns[0]), nil
	}
	acc := ns[0]
	for _, n := range ns[1:] {
		acc -= n
	}
	return DNumber(acc), nil
}

func div(args []Data) (Data, error) {
	ns, err := numbers("/", args)
	if err != nil {
		return nil, err
	}
	if len(ns) < 2 {
		return nil, Errorf(TypeError, "/ expects at least 2 arguments, got %d", len(ns))
	}
	acc := ns[0]
	for _, n := range ns[1:] {
		if n == 0 {
			return nil, Throw(DString("division by zero"))
		}
		acc /= n
	}
	return DNumber(acc), nil
}

func equal(args []Data) (Data, error) {
	if err := arity("=", args, 2); err != nil {
		return nil, err
	}
	return Bool(Equal(args[0], args[1])), nil
}

func compare(name string, op func(x, y int) bool) Func {
	return func(args []Data) (Data, error) {
		if err := arity(name, args, 2); err != nil {
			return nil, err
		}
		ns, err := numbers(name, args)
		if err != nil {
			return nil, err
		}
		return Bool(op(ns[0], ns[1])), nil
	}
}

func is(pred func(Data) bool) Func {
	return func(args []Data) (Data, error) {
		if len(args) != 1 {
			return nil, Errorf(TypeError, "predicate expects 1 argument, got %d", len(args))
		}
		return Bool(pred(args[0])), nil
	}
}

func symbol(args []Data) (Data, error) {
	if err := arity("symbol", args, 1); err != nil {
		return nil, err
	}
	switch a := args[0].(type) {
	case DString:
		return DSymbol(a), nil
	case DSymbol:
		return a, nil
	}
	return nil, Errorf(TypeError, "symbol expects a string")
}

func keyword(args []Data) (Data, error) {
	if err := arity("keyword", args, 1); err != nil {
		return nil, err
	}
	switch a := args[0].(type) {
	case DString:
		return DKeyword(a), nil
	case DKeyword:
		return a, nil
	}
	return nil, Errorf(TypeError, "keyword expects a string")
}

// Atoms
func atom(args []Data) (Data, error) {
	if err := arity("atom", args, 1); err != nil {
		return nil, err
	}
	return &DAtom{Value: args[0]}, nil
}

func atomArg(name string, args []Data) (*DAtom, error) {
	if len(args) == 0 {
		return nil, Errorf(TypeError, "%s expects an atom", name)
	}
	a, ok := args[0].(*DAtom)
	if !ok {
		return nil, Errorf(TypeError, "%s must have an atom as its first argument", name)
	}
	return a, nil
}

func deref(args []Data) (Data, error) {
	if err := arity("deref", args, 1); err != nil {
		return nil, err
	}
	a, err := atomArg("deref", args)
	if err != nil {
		return nil, err
	}
	return a.Value, nil
}

func atomReset(args []Data) (Data, error) {
	if err := arity("reset!", args, 2); err != nil {
		return nil, err
	}
	a, err := atomArg("reset!", args)
	if err != nil {
		return nil, err
	}
	a.Value = args[1]
	return args[1], nil
}

func atomSwap(args []Data) (Data, error) {
	if len(args) < 2 {
		return nil, Errorf(TypeError, "swap! requires at least two values")
	}
	a, err := atomArg("swap!", args)
	if err != nil {
		return nil, err
	}
	if !IsCallable(args[1]) {
		return nil, Errorf(TypeError, "swap! must have a function as its second argument")
	}

	fargs := append([]Data{a.Value}, args[2:]...)
	val, err := Apply(args[1], fargs)
	if err != nil {
		return nil, err
	}
	a.Value = val
	return val, nil
}

func throw(args []Data) (Data, error) {
	if err := arity("throw", args, 1); err != nil {
		return nil, err
	}
	return nil, Throw(args[0])
}

func meta(args []Data) (Data, error) {
	if err := arity("meta", args, 1); err != nil {
		return nil, err
	}
	return MetaOf(args[0]), nil
}

func withMeta(args []Data) (Data, error) {
	if err := arity("with-meta", args, 2); err != nil {
		return nil, err
	}
	return WithMeta(args[0], args[1])
}

func timeMs(args []Data) (Data, error) {
	return DNumber(time.Now().UnixMilli()), nil
}
