package eval

import (
	. "github.com/bshepherdson/mal/types"
)

// Implementations of the special forms that don't loop.

func doDef(args []Data, env *Env, fun string) (DSymbol, Data, error) {
	if len(args) != 2 {
		return "", nil, Errorf(SyntaxError, "%s expects 2 forms, got %d", fun, len(args))
	}
	name, ok := args[0].(DSymbol)
	if !ok {
		return "", nil, Errorf(TypeError, "first parameter for %s must be a symbol", fun)
	}

	evald, err := Eval(args[1], env)
	if err != nil {
		return "", nil, err
	}
	return name, evald, nil
}

func evalDef(args []Data, env *Env) (Data, error) {
	name, evald, err := doDef(args, env, "def!")
	if err != nil {
		return nil, err
	}
	env.Set(string(name), evald)
	return evald, nil
}

func evalDefmacro(args []Data, env *Env) (Data, error) {
	name, evald, err := doDef(args, env, "defmacro!")
	if err != nil {
		return nil, err
	}
	f, ok := evald.(*DClosure)
	if !ok {
		return nil, Errorf(TypeError, "defmacro! expects a function, got %s", TypeName(evald))
	}

	mac := *f
	mac.IsMacro = true
	env.Set(string(name), &mac)
	return &mac, nil
}

// letBindings evaluates each binding in the environment extended so far, so
// later bindings can refer to earlier ones.
func letBindings(args []Data, env *Env) (*Env, Data, error) {
	if len(args) != 2 {
		return nil, nil, Errorf(SyntaxError, "let* expects 2 forms, got %d", len(args))
	}
	bindings, ok := Seq(args[0])
	if !ok {
		return nil, nil, Errorf(TypeError, "first parameter of let* must be a list")
	}
	if len(bindings)%2 != 0 {
		return nil, nil, Errorf(SyntaxError, "let* bindings must come in pairs; found %d", len(bindings))
	}

	letEnv, _ := NewEnv(env, nil, nil)
	for i := 0; i < len(bindings); i += 2 {
		sym, ok := bindings[i].(DSymbol)
		if !ok {
			return nil, nil, Errorf(TypeError, "left-hand binding must be a symbol")
		}
		evald, err := Eval(bindings[i+1], letEnv)
		if err != nil {
			return nil, nil, err
		}
		letEnv.Set(string(sym), evald)
	}
	return letEnv, args[1], nil
}

// makeClosure builds a new function closure over env.
func makeClosure(args []Data, env *Env) (Data, error) {
	if len(args) != 2 {
		return nil, Errorf(SyntaxError, "fn* expects 2 forms, got %d", len(args))
	}
	plist, ok := Seq(args[0])
	if !ok {
		return nil, Errorf(TypeError, "function parameters must be a list")
	}

	params := make([]string, 0, len(plist))
	for i, p := range plist {
		sym, ok := p.(DSymbol)
		if !ok {
			return nil, Errorf(TypeError, "function parameter must be a symbol")
		}
		if sym == "&" && i != len(plist)-2 {
			return nil, Errorf(BindingError, "exactly one name must follow '&', found %d", len(plist)-i-1)
		}
		params = append(params, string(sym))
	}

	c := &DClosure{Params: params, Body: args[1], Env: env}
	c.Fn = func(args []Data) (Data, error) {
		return apply(c, args)
	}
	return c, nil
}

// apply runs a closure to completion. Used when a closure is called from
// outside the evaluator loop: primitives like swap! and macro expansion.
func apply(f *DClosure, args []Data) (Data, error) {
	env, err := NewEnv(f.Env, f.Params, args)
	if err != nil {
		return nil, err
	}
	return Eval(f.Body, env)
}

// evalTry evaluates (try* expr (catch* name handler)). When expr fails, it
// returns the handler and its environment for the caller to evaluate in tail
// position; otherwise it returns expr's result.
func evalTry(args []Data, env *Env) (Data, *Env, Data, error) {
	switch len(args) {
	case 1:
		return args[0], env, nil, nil
	case 2:
	default:
		return nil, nil, nil, Errorf(SyntaxError, "try* expects 1 or 2 forms, got %d", len(args))
	}

	clause, ok := args[1].(*DList)
	if !ok || len(clause.Members) != 3 || !IsSymbol(clause.Members[0], "catch*") {
		return nil, nil, nil, Errorf(SyntaxError, "try* expects a (catch* name handler) clause")
	}
	name, ok := clause.Members[1].(DSymbol)
	if !ok {
		return nil, nil, nil, Errorf(TypeError, "catch* binding must be a symbol")
	}

	result, err := Eval(args[0], env)
	if err == nil {
		return nil, nil, result, nil
	}

	catchEnv, _ := NewEnv(env, []string{string(name)}, []Data{Payload(err)})
	return clause.Members[2], catchEnv, nil, nil
}

func isMacroCall(ast Data, env *Env) (*DClosure, []Data, bool) {
	list, ok := ast.(*DList)
	if !ok || len(list.Members) == 0 {
		return nil, nil, false
	}
	sym, ok := list.Members[0].(DSymbol)
	if !ok {
		return nil, nil, false
	}

	// An unbound head is not an error here; evaluation reports it.
	if m, ok := env.Find(string(sym)); ok {
		if c, ok := m.(*DClosure); ok && c.IsMacro {
			return c, list.Members[1:], true
		}
	}
	return nil, nil, false
}

// MacroExpand expands ast until its head is no longer a macro.
func MacroExpand(ast Data, env *Env) (Data, error) {
	for {
		mac, args, ok := isMacroCall(ast, env)
		if !ok {
			return ast, nil
		}
		var err error
		ast, err = mac.Fn(args)
		if err != nil {
			return nil, err
		}
	}
}
