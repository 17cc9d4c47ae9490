package core

import (
	"errors"
	"fmt"
	"os"

	"github.com/bshepherdson/mal/printer"
	"github.com/bshepherdson/mal/reader"
	. "github.com/bshepherdson/mal/types"
)

func prStr(args []Data) (Data, error) {
	return DString(printer.PrintList(args, true, " ")), nil
}

func fStr(args []Data) (Data, error) {
	return DString(printer.PrintList(args, false, "")), nil
}

func (n *namespace) prn(args []Data) (Data, error) {
	fmt.Fprintln(n.out, printer.PrintList(args, true, " "))
	return Nil, nil
}

func (n *namespace) println(args []Data) (Data, error) {
	fmt.Fprintln(n.out, printer.PrintList(args, false, " "))
	return Nil, nil
}

// readline returns nil at end of input or when the prompt is aborted.
func (n *namespace) readline(args []Data) (Data, error) {
	if err := arity("readline", args, 1); err != nil {
		return nil, err
	}
	prompt, ok := args[0].(DString)
	if !ok {
		return nil, Errorf(TypeError, "readline expects a prompt string")
	}
	if n.in == nil {
		return Nil, nil
	}

	line, err := n.in.Prompt(string(prompt))
	if err != nil {
		return Nil, nil
	}
	return DString(line), nil
}

// readString returns nil for input without a form.
func readString(args []Data) (Data, error) {
	if err := arity("read-string", args, 1); err != nil {
		return nil, err
	}
	s, ok := args[0].(DString)
	if !ok {
		return nil, Errorf(TypeError, "read-string expects a single string arg")
	}

	form, err := reader.ReadStr(string(s))
	if errors.Is(err, reader.ErrNoForm) {
		return Nil, nil
	}
	return form, err
}

func slurp(args []Data) (Data, error) {
	if err := arity("slurp", args, 1); err != nil {
		return nil, err
	}
	filename, ok := args[0].(DString)
	if !ok {
		return nil, Errorf(TypeError, "slurp expects a single filename as a string")
	}

	contents, err := os.ReadFile(string(filename))
	if err != nil {
		return nil, Throw(DString(fmt.Sprintf("slurp failed to read the file: %v", err)))
	}
	return DString(contents), nil
}
