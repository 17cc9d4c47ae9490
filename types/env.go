package types

// Env is one lexical scope. Scopes are shared by closures and never copied.
type Env struct {
	data  map[string]Data
	outer *Env
}

// NewEnv binds binds[i] to exprs[i]. A "&" in binds must be followed by
// exactly one name, which receives the remaining exprs as a list.
func NewEnv(outer *Env, binds []string, exprs []Data) (*Env, error) {
	env := &Env{data: make(map[string]Data, len(binds)), outer: outer}

	for i, name := range binds {
		if name == "&" {
			if i != len(binds)-2 {
				return nil, Errorf(BindingError, "exactly one name must follow '&', found %d", len(binds)-i-1)
			}
			if len(exprs) < i {
				return nil, Errorf(TypeError, "not enough arguments: expected at least %d, got %d", i, len(exprs))
			}
			rest := make([]Data, len(exprs)-i)
			copy(rest, exprs[i:])
			env.data[binds[i+1]] = NewList(rest...)
			return env, nil
		}
		if i >= len(exprs) {
			return nil, Errorf(TypeError, "not enough arguments: expected %d, got %d", len(binds), len(exprs))
		}
		env.data[name] = exprs[i]
	}

	if len(exprs) > len(binds) {
		return nil, Errorf(TypeError, "too many arguments: expected %d, got %d", len(binds), len(exprs))
	}
	return env, nil
}

// Set binds key in this frame only.
func (e *Env) Set(key string, value Data) {
	e.data[key] = value
}

func (e *Env) Find(key string) (Data, bool) {
	for env := e; env != nil; env = env.outer {
		if value, ok := env.data[key]; ok {
			return value, true
		}
	}
	return nil, false
}

func (e *Env) Get(key string) (Data, error) {
	value, ok := e.Find(key)
	if !ok {
		return nil, Errorf(NameError, "'%s' not found", key)
	}
	return value, nil
}
