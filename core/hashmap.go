package core

import (
	. "github.com/bshepherdson/mal/types"
)

func hashMapArg(name string, d Data) (*DHashMap, error) {
	hm, ok := d.(*DHashMap)
	if !ok {
		return nil, Errorf(TypeError, "%s expects a hash-map, got %s", name, TypeName(d))
	}
	return hm, nil
}

func hashMap(args []Data) (Data, error) {
	return NewHashMap(args...)
}

func assoc(args []Data) (Data, error) {
	if len(args) == 0 {
		return nil, Errorf(TypeError, "assoc expects a hash-map")
	}
	hm, err := hashMapArg("assoc", args[0])
	if err != nil {
		return nil, err
	}
	return hm.Assoc(args[1:]...)
}

func dissoc(args []Data) (Data, error) {
	if len(args) == 0 {
		return nil, Errorf(TypeError, "dissoc expects a hash-map")
	}
	hm, err := hashMapArg("dissoc", args[0])
	if err != nil {
		return nil, err
	}
	return hm.Dissoc(args[1:]...), nil
}

// get returns nil for a missing key or a nil map.
func get(args []Data) (Data, error) {
	if err := arity("get", args, 2); err != nil {
		return nil, err
	}
	if _, ok := args[0].(DNil); ok {
		return Nil, nil
	}
	hm, err := hashMapArg("get", args[0])
	if err != nil {
		return nil, err
	}
	if v, ok := hm.Get(args[1]); ok {
		return v, nil
	}
	return Nil, nil
}

func containsQ(args []Data) (Data, error) {
	if err := arity("contains?", args, 2); err != nil {
		return nil, err
	}
	hm, err := hashMapArg("contains?", args[0])
	if err != nil {
		return nil, err
	}
	_, ok := hm.Get(args[1])
	return Bool(ok), nil
}

func keys(args []Data) (Data, error) {
	if err := arity("keys", args, 1); err != nil {
		return nil, err
	}
	hm, err := hashMapArg("keys", args[0])
	if err != nil {
		return nil, err
	}
	return NewList(hm.Keys()...), nil
}

func vals(args []Data) (Data, error) {
	if err := arity("vals", args, 1); err != nil {
		return nil, err
	}
	hm, err := hashMapArg("vals", args[0])
	if err != nil {
		return nil, err
	}
	out := []Data{}
	for _, k := range hm.Keys() {
		out = append(out, hm.Entries[k])
	}
	return NewList(out...), nil
}
