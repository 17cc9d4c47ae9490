package interp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bshepherdson/mal/reader"
	. "github.com/bshepherdson/mal/types"
)

func newTestInterpreter(t *testing.T, out io.Writer) *Interpreter {
	t.Helper()
	ip, err := New(Config{}, out, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ip
}

func testRep(t *testing.T, expected string, inputs ...string) {
	t.Helper()
	ip := newTestInterpreter(t, io.Discard)
	var got string
	var err error
	for _, input := range inputs {
		got, err = ip.Rep(input)
		if err != nil {
			t.Fatalf("rep %q: %v", input, err)
		}
	}
	if got != expected {
		t.Fatalf("rep %q: expected %s, got %s", inputs[len(inputs)-1], expected, got)
	}
}

func TestRep(t *testing.T) {
	testRep(t, "3", "(+ 1 2)")
	testRep(t, `"go"`, "*host-language*")
	testRep(t, "()", "*ARGV*")
	testRep(t, "(1 2 3)", "(def! xs (list 1 2 3))", "xs")
	testRep(t, `"abc"`, `"abc"`)
}

func TestRepNoForm(t *testing.T) {
	ip := newTestInterpreter(t, io.Discard)
	if _, err := ip.Rep("; just a comment"); !errors.Is(err, reader.ErrNoForm) {
		t.Fatalf("expected ErrNoForm, got %v", err)
	}
}

func TestBootstrapNot(t *testing.T) {
	testRep(t, "true", "(not nil)")
	testRep(t, "true", "(not false)")
	testRep(t, "false", "(not 0)")
}

func TestBootstrapCond(t *testing.T) {
	testRep(t, "7", "(cond false 1 (= 1 2) 2 :else 7)")
	testRep(t, "1", "(cond true 1 :else 7)")
	testRep(t, "nil", "(cond false 1)")
	testRep(t, `"odd number of forms to cond"`, `(try* (cond true) (catch* e e))`)
}

func TestBootstrapOr(t *testing.T) {
	testRep(t, "nil", "(or)")
	testRep(t, "3", "(or nil false 3)")
	testRep(t, "false", "(or nil false)")
	// The first truthy form is evaluated once.
	testRep(t, "1",
		"(def! a (atom 0))",
		"(or (swap! a + 1) (swap! a + 10))",
		"@a")
}

func TestEvalUsesRootEnv(t *testing.T) {
	testRep(t, "1",
		"(def! x 1)",
		"(let* (x 2) (eval 'x))")
	testRep(t, "5",
		"(let* (y 3) (eval '(def! z 5)))",
		"z")
}

func TestPrintlnOutput(t *testing.T) {
	var out bytes.Buffer
	ip := newTestInterpreter(t, &out)
	if _, err := ip.Rep(`(println "hello" :world)`); err != nil {
		t.Fatalf("rep: %v", err)
	}
	if out.String() != "hello :world\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.mal")
	src := `;; sets a global from the command line
(def! greeting (str "hi " (first *ARGV*)))
(def! n (count *ARGV*))`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	ip := newTestInterpreter(t, io.Discard)
	if err := ip.LoadFile(path, []string{"there", "x"}); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	got, err := ip.Rep("greeting")
	if err != nil || got != `"hi there"` {
		t.Fatalf("greeting: got %s %v", got, err)
	}
	got, err = ip.Rep("n")
	if err != nil || got != "2" {
		t.Fatalf("n: got %s %v", got, err)
	}
}

func TestLoadFileEndingInComment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comment.mal")
	if err := os.WriteFile(path, []byte("(def! v 9) ; trailing"), 0o644); err != nil {
		t.Fatal(err)
	}
	ip := newTestInterpreter(t, io.Discard)
	if err := ip.LoadFile(path, nil); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got, _ := ip.Rep("v"); got != "9" {
		t.Fatalf("expected 9, got %s", got)
	}
}

type scriptInput struct {
	lines   []string
	prompts []string
}

func (s *scriptInput) Prompt(p string) (string, error) {
	s.prompts = append(s.prompts, p)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func TestLoadFileReadline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ask.mal")
	src := `(def! answer (readline "name? "))
(def! after (readline "again? "))`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	in := &scriptInput{lines: []string{"ada"}}
	ip, err := New(Config{}, io.Discard, in)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ip.LoadFile(path, nil); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got, _ := ip.Rep("answer"); got != `"ada"` {
		t.Fatalf("answer: expected \"ada\", got %s", got)
	}
	if got, _ := ip.Rep("after"); got != "nil" {
		t.Fatalf("after: expected nil at end of input, got %s", got)
	}
	if len(in.prompts) != 2 || in.prompts[0] != "name? " {
		t.Fatalf("unexpected prompts %q", in.prompts)
	}
}

func TestLoadFileErrors(t *testing.T) {
	ip := newTestInterpreter(t, io.Discard)
	err := ip.LoadFile(filepath.Join(t.TempDir(), "missing.mal"), nil)
	if kind, _ := KindOf(err); kind != UserError {
		t.Fatalf("expected UserError for a missing file, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.mal")
	if err := os.WriteFile(path, []byte("(undefined-fn 1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	err = ip.LoadFile(path, nil)
	if kind, _ := KindOf(err); kind != NameError {
		t.Fatalf("expected NameError, got %v", err)
	}
}

func TestFormatError(t *testing.T) {
	cases := []struct {
		err      error
		expected string
	}{
		{Throw(DString("boom")), "uncaught error: boom"},
		{Throw(NewList(DNumber(1), DString("a"))), `uncaught error: (1 "a")`},
		{Errorf(NameError, "'x' not found"), "name error: 'x' not found"},
		{Errorf(TypeError, "bad"), "type error: bad"},
		{UnexpectedEOF("expected ')', got EOF"), "syntax error: expected ')', got EOF"},
		{fmt.Errorf("plain"), "plain"},
	}
	for _, c := range cases {
		if got := FormatError(c.err); got != c.expected {
			t.Errorf("expected %q, got %q", c.expected, got)
		}
	}
}

func TestUncaughtThrow(t *testing.T) {
	ip := newTestInterpreter(t, io.Discard)
	_, err := ip.Rep(`(throw {:code 7})`)
	if got := FormatError(err); got != "uncaught error: {:code 7}" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestDebugLogging(t *testing.T) {
	if _, err := New(Config{Debug: true}, io.Discard, nil); err != nil {
		t.Fatalf("New with debug: %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MAL_PROMPT", "mal> ")
	t.Setenv("MAL_HISTORY", "/tmp/hist")
	t.Setenv("MAL_DEBUG", "1")
	t.Setenv("NO_COLOR", "1")

	cfg := ConfigFromEnv()
	if cfg.Prompt != "mal> " {
		t.Errorf("prompt: got %q", cfg.Prompt)
	}
	if cfg.HistoryPath != "/tmp/hist" {
		t.Errorf("history: got %q", cfg.HistoryPath)
	}
	if !cfg.Debug {
		t.Errorf("debug should be on")
	}
	if cfg.Color {
		t.Errorf("color should be off")
	}
}

func TestConfigHistoryDisabled(t *testing.T) {
	t.Setenv("MAL_HISTORY", "-")
	if cfg := ConfigFromEnv(); cfg.HistoryPath != "" {
		t.Fatalf("expected history disabled, got %q", cfg.HistoryPath)
	}
}
