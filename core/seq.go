package core

import (
	. "github.com/bshepherdson/mal/types"
)

func seqArg(name string, d Data) ([]Data, error) {
	if _, ok := d.(DNil); ok {
		return nil, nil
	}
	members, ok := Seq(d)
	if !ok {
		return nil, Errorf(TypeError, "%s expects a list or vector, got %s", name, TypeName(d))
	}
	return members, nil
}

func mkList(args []Data) (Data, error) {
	return NewList(append([]Data(nil), args...)...), nil
}

func mkVector(args []Data) (Data, error) {
	return NewVector(append([]Data(nil), args...)...), nil
}

func vec(args []Data) (Data, error) {
	if err := arity("vec", args, 1); err != nil {
		return nil, err
	}
	if v, ok := args[0].(*DVector); ok {
		return v, nil
	}
	members, err := seqArg("vec", args[0])
	if err != nil {
		return nil, err
	}
	return NewVector(members...), nil
}

func emptyQ(args []Data) (Data, error) {
	if err := arity("empty?", args, 1); err != nil {
		return nil, err
	}
	members, err := seqArg("empty?", args[0])
	if err != nil {
		return nil, err
	}
	return Bool(len(members) == 0), nil
}

func count(args []Data) (Data, error) {
	if err := arity("count", args, 1); err != nil {
		return nil, err
	}
	if hm, ok := args[0].(*DHashMap); ok {
		return DNumber(len(hm.Entries)), nil
	}
	members, err := seqArg("count", args[0])
	if err != nil {
		return nil, err
	}
	return DNumber(len(members)), nil
}

func cons(args []Data) (Data, error) {
	if err := arity("cons", args, 2); err != nil {
		return nil, err
	}
	members, err := seqArg("cons", args[1])
	if err != nil {
		return nil, err
	}

	list := make([]Data, 0, len(members)+1)
	list = append(list, args[0])
	list = append(list, members...)
	return NewList(list...), nil
}

func concat(args []Data) (Data, error) {
	out := []Data{}
	for _, a := range args {
		members, err := seqArg("concat", a)
		if err != nil {
			return nil, err
		}
		out = append(out, members...)
	}
	return NewList(out...), nil
}

// conj prepends to lists (in argument order, so the last ends up first) and
// appends to vectors.
func conj(args []Data) (Data, error) {
	if len(args) == 0 {
		return nil, Errorf(TypeError, "conj expects a collection")
	}
	switch c := args[0].(type) {
	case *DList:
		out := make([]Data, 0, len(c.Members)+len(args)-1)
		for i := len(args) - 1; i >= 1; i-- {
			out = append(out, args[i])
		}
		out = append(out, c.Members...)
		return &DList{Members: out, Meta: c.Meta}, nil
	case *DVector:
		out := make([]Data, 0, len(c.Members)+len(args)-1)
		out = append(out, c.Members...)
		out = append(out, args[1:]...)
		return &DVector{Members: out, Meta: c.Meta}, nil
	}
	return nil, Errorf(TypeError, "conj expects a list or vector, got %s", TypeName(args[0]))
}

// seq turns lists, vectors and strings into lists; empty ones become nil.
func seq(args []Data) (Data, error) {
	if err := arity("seq", args, 1); err != nil {
		return nil, err
	}
	switch a := args[0].(type) {
	case DNil:
		return Nil, nil
	case DString:
		if a == "" {
			return Nil, nil
		}
		out := []Data{}
		for _, r := range string(a) {
			out = append(out, DString(string(r)))
		}
		return NewList(out...), nil
	case *DList:
		if len(a.Members) == 0 {
			return Nil, nil
		}
		return a, nil
	case *DVector:
		if len(a.Members) == 0 {
			return Nil, nil
		}
		return NewList(a.Members...), nil
	}
	return nil, Errorf(TypeError, "seq does not support %s", TypeName(args[0]))
}

func nth(args []Data) (Data, error) {
	if err := arity("nth", args, 2); err != nil {
		return nil, err
	}
	members, err := seqArg("nth", args[0])
	if err != nil {
		return nil, err
	}
	idx, err := number("nth", args[1])
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(members) {
		return nil, Errorf(TypeError, "nth: index %d out of bounds", idx)
	}
	return members[idx], nil
}

func first(args []Data) (Data, error) {
	if err := arity("first", args, 1); err != nil {
		return nil, err
	}
	members, err := seqArg("first", args[0])
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return Nil, nil
	}
	return members[0], nil
}

func rest(args []Data) (Data, error) {
	if err := arity("rest", args, 1); err != nil {
		return nil, err
	}
	members, err := seqArg("rest", args[0])
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return NewList(), nil
	}
	return NewList(members[1:]...), nil
}

// apply calls f with the leading arguments followed by the members of the
// final list.
func apply(args []Data) (Data, error) {
	if len(args) < 2 {
		return nil, Errorf(TypeError, "apply expects a function and a list")
	}
	last, err := seqArg("apply", args[len(args)-1])
	if err != nil {
		return nil, err
	}

	fargs := make([]Data, 0, len(args)-2+len(last))
	fargs = append(fargs, args[1:len(args)-1]...)
	fargs = append(fargs, last...)
	return Apply(args[0], fargs)
}

func mapFn(args []Data) (Data, error) {
	if err := arity("map", args, 2); err != nil {
		return nil, err
	}
	members, err := seqArg("map", args[1])
	if err != nil {
		return nil, err
	}

	out := make([]Data, 0, len(members))
	for _, m := range members {
		v, err := Apply(args[0], []Data{m})
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return NewList(out...), nil
}
