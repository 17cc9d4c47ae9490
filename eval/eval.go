package eval

import (
	"github.com/bshepherdson/mal/printer"
	. "github.com/bshepherdson/mal/types"
)

// Eval evaluates ast in env. Forms in tail position reassign ast and env and
// go around the loop instead of recursing, so tail calls use constant stack.
func Eval(ast Data, env *Env) (Data, error) {
	for {
		list, ok := ast.(*DList)
		if !ok {
			return evalAST(ast, env)
		}
		if len(list.Members) == 0 {
			return ast, nil
		}

		// Try to expand macros first thing.
		expanded, err := MacroExpand(ast, env)
		if err != nil {
			return nil, err
		}
		if list, ok = expanded.(*DList); !ok {
			return evalAST(expanded, env)
		}
		ast = expanded
		if len(list.Members) == 0 {
			return ast, nil
		}

		if sym, ok := list.Members[0].(DSymbol); ok {
			args := list.Members[1:]
			switch sym {
			case "def!":
				return evalDef(args, env)

			case "defmacro!":
				return evalDefmacro(args, env)

			case "let*":
				letEnv, body, err := letBindings(args, env)
				if err != nil {
					return nil, err
				}
				ast, env = body, letEnv
				continue

			case "do":
				if len(args) == 0 {
					return Nil, nil
				}
				for _, expr := range args[:len(args)-1] {
					if _, err := Eval(expr, env); err != nil {
						return nil, err
					}
				}
				ast = args[len(args)-1]
				continue

			case "if":
				if len(args) < 2 || len(args) > 3 {
					return nil, Errorf(SyntaxError, "if expects 2 or 3 forms, got %d", len(args))
				}
				cond, err := Eval(args[0], env)
				if err != nil {
					return nil, err
				}
				if Truthy(cond) {
					ast = args[1]
					continue
				}
				if len(args) < 3 {
					return Nil, nil
				}
				ast = args[2]
				continue

			case "fn*":
				return makeClosure(args, env)

			case "quote":
				if len(args) != 1 {
					return nil, Errorf(SyntaxError, "quote expects 1 form, got %d", len(args))
				}
				return args[0], nil

			case "quasiquote":
				if len(args) != 1 {
					return nil, Errorf(SyntaxError, "quasiquote expects 1 form, got %d", len(args))
				}
				ast = Quasiquote(args[0])
				continue

			case "quasiquoteexpand":
				if len(args) != 1 {
					return nil, Errorf(SyntaxError, "quasiquoteexpand expects 1 form, got %d", len(args))
				}
				return Quasiquote(args[0]), nil

			case "macroexpand":
				if len(args) != 1 {
					return nil, Errorf(SyntaxError, "macroexpand expects 1 form, got %d", len(args))
				}
				return MacroExpand(args[0], env)

			case "try*":
				body, catchEnv, result, err := evalTry(args, env)
				if err != nil || body == nil {
					return result, err
				}
				ast, env = body, catchEnv
				continue
			}
		}

		evald, err := evalList(list.Members, env)
		if err != nil {
			return nil, err
		}

		switch f := evald[0].(type) {
		case *DNative:
			return f.Fn(evald[1:])
		case *DClosure:
			if !f.IsMacro {
				newEnv, err := NewEnv(f.Env, f.Params, evald[1:])
				if err != nil {
					return nil, err
				}
				ast, env = f.Body, newEnv
				continue // TCO
			}
		}
		return nil, Errorf(TypeError, "cannot call non-function %s", printer.PrintStr(evald[0], true))
	}
}

// evalAST evaluates a form that is not a call: symbols are looked up and
// collections evaluate their elements into a collection of the same shape.
func evalAST(ast Data, env *Env) (Data, error) {
	switch a := ast.(type) {
	case DSymbol:
		return env.Get(string(a))

	case *DList:
		evald, err := evalList(a.Members, env)
		if err != nil {
			return nil, err
		}
		return NewList(evald...), nil

	case *DVector:
		if len(a.Members) == 0 {
			return ast, nil
		}
		evald, err := evalList(a.Members, env)
		if err != nil {
			return nil, err
		}
		return NewVector(evald...), nil

	case *DHashMap:
		if len(a.Entries) == 0 {
			return ast, nil
		}
		out := &DHashMap{Entries: make(map[Data]Data, len(a.Entries))}
		for k, v := range a.Entries {
			evald, err := Eval(v, env)
			if err != nil {
				return nil, err
			}
			out.Entries[k] = evald
		}
		return out, nil
	}

	return ast, nil
}

func evalList(list []Data, env *Env) ([]Data, error) {
	ret := make([]Data, 0, len(list))
	for _, expr := range list {
		evald, err := Eval(expr, env)
		if err != nil {
			return nil, err
		}
		ret = append(ret, evald)
	}
	return ret, nil
}
