// Package interp wires the reader, evaluator, printer and core library into
// a ready-to-use root environment.
package interp

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bshepherdson/mal/core"
	"github.com/bshepherdson/mal/eval"
	"github.com/bshepherdson/mal/printer"
	"github.com/bshepherdson/mal/reader"
	. "github.com/bshepherdson/mal/types"
)

// Functions defined in mal itself, evaluated once the primitives are bound.
var nsMal = []string{
	"(def! not (fn* (a) (if a false true)))",
	"(def! load-file (fn* (f) (eval (read-string (str \"(do \" (slurp f) \"\nnil)\")))))",
	"(defmacro! cond (fn* (& xs) (if (> (count xs) 0) (list 'if (first xs) (if (> (count xs) 1) (nth xs 1) (throw \"odd number of forms to cond\")) (cons 'cond (rest (rest xs)))))))",
	"(defmacro! or (fn* (& xs) (if (empty? xs) nil (if (= 1 (count xs)) (first xs) `(let* (or_inner ~(first xs)) (if or_inner or_inner (or ~@(rest xs))))))))",
}

type Interpreter struct {
	Env *Env
	log *log.Logger
}

// New builds the root environment. Printing primitives write to out and
// readline prompts through in, which may be nil.
func New(cfg Config, out io.Writer, in core.LineReader) (*Interpreter, error) {
	logOut := io.Discard
	if cfg.Debug {
		logOut = os.Stderr
	}
	root, _ := NewEnv(nil, nil, nil)
	ip := &Interpreter{
		Env: root,
		log: log.New(logOut, "mal: ", log.LstdFlags),
	}

	ns := core.NS(out, in)
	for name, fn := range ns {
		root.Set(name, &DNative{Name: name, Fn: fn})
	}
	root.Set("eval", &DNative{Name: "eval", Fn: ip.evalPrimitive})
	root.Set("*ARGV*", NewList())
	root.Set("*host-language*", DString("go"))

	for _, src := range nsMal {
		if _, err := ip.EvalString(src); err != nil {
			return nil, fmt.Errorf("bootstrap %q: %w", src, err)
		}
	}
	ip.log.Printf("root environment ready: %d primitives, %d bootstrap forms", len(ns), len(nsMal))
	return ip, nil
}

// eval always evaluates in the root environment, whatever scope calls it.
func (ip *Interpreter) evalPrimitive(args []Data) (Data, error) {
	if len(args) != 1 {
		return nil, Errorf(TypeError, "eval expects a single value as an argument")
	}
	return eval.Eval(args[0], ip.Env)
}

func (ip *Interpreter) Read(input string) (Data, error) {
	return reader.ReadStr(input)
}

func (ip *Interpreter) Eval(form Data) (Data, error) {
	return eval.Eval(form, ip.Env)
}

func (ip *Interpreter) EvalString(input string) (Data, error) {
	form, err := ip.Read(input)
	if err != nil {
		return nil, err
	}
	return ip.Eval(form)
}

// Rep reads, evaluates and prints one form. Input without a form returns
// reader.ErrNoForm.
func (ip *Interpreter) Rep(input string) (string, error) {
	evald, err := ip.EvalString(input)
	if err != nil {
		return "", err
	}
	return printer.PrintStr(evald, true), nil
}

// LoadFile binds *ARGV* to argv and evaluates every form in path.
func (ip *Interpreter) LoadFile(path string, argv []string) error {
	args := make([]Data, len(argv))
	for i, a := range argv {
		args[i] = DString(a)
	}
	ip.Env.Set("*ARGV*", NewList(args...))

	ip.log.Printf("loading %s", path)
	_, err := eval.Eval(NewList(DSymbol("load-file"), DString(path)), ip.Env)
	return err
}

// FormatError renders an error for the user. Thrown values are printed
// readably.
func FormatError(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Kind == UserError {
		if s, ok := e.Value.(DString); ok {
			return "uncaught error: " + string(s)
		}
		return "uncaught error: " + printer.PrintStr(e.Value, true)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}
