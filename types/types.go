package types

import "sort"

// Data is any value the interpreter reads, evaluates or prints. The set of
// implementations is closed; consumers switch on the concrete type.
type Data interface {
	isData()
}

// Func is the native entry point shared by primitives and closures.
type Func func(args []Data) (Data, error)

type DNumber int

type DSymbol string

// DKeyword holds the keyword name without its leading colon.
type DKeyword string

type DString string

type DBool bool

type DNil struct{}

type DList struct {
	Members []Data
	Meta    Data
}

type DVector struct {
	Members []Data
	Meta    Data
}

// DHashMap is keyed by DString or DKeyword values only.
type DHashMap struct {
	Entries map[Data]Data
	Meta    Data
}

// DClosure is a user function. Env is shared with the scope that evaluated
// the fn* form. Macros are closures with IsMacro set.
type DClosure struct {
	Params  []string
	Body    Data
	Env     *Env
	Fn      Func
	IsMacro bool
	Meta    Data
}

type DNative struct {
	Name string
	Fn   Func
	Meta Data
}

// DAtom is the one mutable cell in the value model.
type DAtom struct {
	Value Data
}

func (DNumber) isData()   {}
func (DSymbol) isData()   {}
func (DKeyword) isData()  {}
func (DString) isData()   {}
func (DBool) isData()     {}
func (DNil) isData()      {}
func (*DList) isData()    {}
func (*DVector) isData()  {}
func (*DHashMap) isData() {}
func (*DClosure) isData() {}
func (*DNative) isData()  {}
func (*DAtom) isData()    {}

var (
	Nil   Data = DNil{}
	True  Data = DBool(true)
	False Data = DBool(false)
)

func Bool(b bool) Data {
	if b {
		return True
	}
	return False
}

func NewList(members ...Data) *DList {
	if members == nil {
		members = []Data{}
	}
	return &DList{Members: members}
}

func NewVector(members ...Data) *DVector {
	if members == nil {
		members = []Data{}
	}
	return &DVector{Members: members}
}

// NewHashMap builds a map from alternating keys and values.
func NewHashMap(kvs ...Data) (*DHashMap, error) {
	hm := &DHashMap{Entries: make(map[Data]Data, len(kvs)/2)}
	return hm.assocInto(kvs)
}

// Assoc returns a copy of hm with the given key/value pairs added.
func (hm *DHashMap) Assoc(kvs ...Data) (*DHashMap, error) {
	out := &DHashMap{Entries: make(map[Data]Data, len(hm.Entries)+len(kvs)/2), Meta: hm.Meta}
	for k, v := range hm.Entries {
		out.Entries[k] = v
	}
	return out.assocInto(kvs)
}

func (hm *DHashMap) assocInto(kvs []Data) (*DHashMap, error) {
	if len(kvs)%2 != 0 {
		return nil, Errorf(SyntaxError, "hash-map expects an even number of forms, got %d", len(kvs))
	}
	for i := 0; i < len(kvs); i += 2 {
		if !IsHashKey(kvs[i]) {
			return nil, Errorf(TypeError, "hash-map keys must be strings or keywords")
		}
		hm.Entries[kvs[i]] = kvs[i+1]
	}
	return hm, nil
}

// Dissoc returns a copy of hm without the given keys.
func (hm *DHashMap) Dissoc(keys ...Data) *DHashMap {
	out := &DHashMap{Entries: make(map[Data]Data, len(hm.Entries)), Meta: hm.Meta}
	for k, v := range hm.Entries {
		out.Entries[k] = v
	}
	for _, k := range keys {
		if IsHashKey(k) {
			delete(out.Entries, k)
		}
	}
	return out
}

// Get reports whether key is present, so stored nil and false values are
// distinguishable from missing ones.
func (hm *DHashMap) Get(key Data) (Data, bool) {
	if !IsHashKey(key) {
		return nil, false
	}
	v, ok := hm.Entries[key]
	return v, ok
}

// Keys returns the keys with strings first, then keywords, each sorted.
func (hm *DHashMap) Keys() []Data {
	keys := make([]Data, 0, len(hm.Entries))
	for k := range hm.Entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		si, iStr := keys[i].(DString)
		sj, jStr := keys[j].(DString)
		if iStr != jStr {
			return iStr
		}
		if iStr {
			return si < sj
		}
		return keys[i].(DKeyword) < keys[j].(DKeyword)
	})
	return keys
}

func IsHashKey(d Data) bool {
	switch d.(type) {
	case DString, DKeyword:
		return true
	}
	return false
}

// Seq returns the members of a list or vector.
func Seq(d Data) ([]Data, bool) {
	switch d := d.(type) {
	case *DList:
		return d.Members, true
	case *DVector:
		return d.Members, true
	}
	return nil, false
}

// Truthy: everything except nil and false.
func Truthy(d Data) bool {
	switch d := d.(type) {
	case DNil:
		return false
	case DBool:
		return bool(d)
	}
	return true
}

// IsSymbol reports whether d is the symbol name.
func IsSymbol(d Data, name string) bool {
	s, ok := d.(DSymbol)
	return ok && string(s) == name
}

func IsCallable(d Data) bool {
	switch d := d.(type) {
	case *DNative:
		return true
	case *DClosure:
		return !d.IsMacro
	}
	return false
}

// Apply calls a native function or closure outside the evaluator loop.
// Macros are rejected; only the expander invokes them.
func Apply(fn Data, args []Data) (Data, error) {
	switch f := fn.(type) {
	case *DNative:
		return f.Fn(args)
	case *DClosure:
		if f.IsMacro {
			return nil, Errorf(TypeError, "cannot call macro as a function")
		}
		return f.Fn(args)
	}
	return nil, Errorf(TypeError, "cannot call non-function %s", TypeName(fn))
}

// Equal compares structurally. Lists and vectors with equal members are
// equal; metadata is ignored.
func Equal(a, b Data) bool {
	if as, ok := Seq(a); ok {
		bs, ok := Seq(b)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	switch a := a.(type) {
	case *DHashMap:
		b, ok := b.(*DHashMap)
		if !ok || len(a.Entries) != len(b.Entries) {
			return false
		}
		for k, av := range a.Entries {
			bv, ok := b.Entries[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return a == b
}

func MetaOf(d Data) Data {
	var m Data
	switch d := d.(type) {
	case *DList:
		m = d.Meta
	case *DVector:
		m = d.Meta
	case *DHashMap:
		m = d.Meta
	case *DClosure:
		m = d.Meta
	case *DNative:
		m = d.Meta
	}
	if m == nil {
		return Nil
	}
	return m
}

// WithMeta returns a shallow copy of d carrying meta.
func WithMeta(d Data, meta Data) (Data, error) {
	switch d := d.(type) {
	case *DList:
		return &DList{Members: d.Members, Meta: meta}, nil
	case *DVector:
		return &DVector{Members: d.Members, Meta: meta}, nil
	case *DHashMap:
		return &DHashMap{Entries: d.Entries, Meta: meta}, nil
	case *DClosure:
		c := *d
		c.Meta = meta
		return &c, nil
	case *DNative:
		n := *d
		n.Meta = meta
		return &n, nil
	}
	return nil, Errorf(TypeError, "with-meta does not support %s", TypeName(d))
}

// TypeName is used in error messages.
func TypeName(d Data) string {
	switch d := d.(type) {
	case DNumber:
		return "number"
	case DSymbol:
		return "symbol"
	case DKeyword:
		return "keyword"
	case DString:
		return "string"
	case DBool:
		return "boolean"
	case DNil:
		return "nil"
	case *DList:
		return "list"
	case *DVector:
		return "vector"
	case *DHashMap:
		return "hash-map"
	case *DClosure:
		if d.IsMacro {
			return "macro"
		}
		return "function"
	case *DNative:
		return "function"
	case *DAtom:
		return "atom"
	}
	return "unknown"
}
