package reader

import (
	"errors"
	"testing"

	. "github.com/bshepherdson/mal/types"
)

func mustRead(t *testing.T, input string) Data {
	t.Helper()
	d, err := ReadStr(input)
	if err != nil {
		t.Fatalf("read %q: %v", input, err)
	}
	return d
}

func testRead(t *testing.T, input string, expected Data) {
	t.Helper()
	d := mustRead(t, input)
	if !Equal(d, expected) {
		t.Fatalf("read %q: expected %#v, got %#v", input, expected, d)
	}
}

func testReadKind(t *testing.T, input string, kind Kind) {
	t.Helper()
	_, err := ReadStr(input)
	if got, ok := KindOf(err); !ok || got != kind {
		t.Fatalf("read %q: expected %v, got %v", input, kind, err)
	}
}

func TestTokenizer(t *testing.T) {
	tokens, err := tokenizer("(+ 1, 2) ; comment\n~@xs ~a @b 'c `d ^m [x] {:k \"v\\\"\"}")
	if err != nil {
		t.Fatalf("tokenizer: %v", err)
	}
	want := []string{"(", "+", "1", "2", ")", "~@", "xs", "~", "a", "@", "b", "'", "c", "`", "d", "^", "m", "[", "x", "]", "{", ":k", "\"v\\\"\"", "}"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %q", len(want), len(tokens), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: expected %q, got %q", i, want[i], tokens[i])
		}
	}
}

func TestReadAtoms(t *testing.T) {
	testRead(t, "42", DNumber(42))
	testRead(t, "-7", DNumber(-7))
	testRead(t, "-", DSymbol("-"))
	testRead(t, "abc", DSymbol("abc"))
	testRead(t, "1.5", DSymbol("1.5"))
	testRead(t, ":kw", DKeyword("kw"))
	testRead(t, "true", True)
	testRead(t, "false", False)
	testRead(t, "nil", Nil)
	testRead(t, "  \n\t, sym  ", DSymbol("sym"))
	testRead(t, "λ", DSymbol("λ"))
}

func TestReadStrings(t *testing.T) {
	testRead(t, `"hello"`, DString("hello"))
	testRead(t, `""`, DString(""))
	testRead(t, `"a\nb"`, DString("a\nb"))
	testRead(t, `"say \"hi\""`, DString(`say "hi"`))
	testRead(t, `"back\\slash"`, DString(`back\slash`))
	testRead(t, `"a;b"`, DString("a;b"))
	testRead(t, `"(not a list)"`, DString("(not a list)"))
}

func TestReadCollections(t *testing.T) {
	testRead(t, "(1 2 (3))", NewList(DNumber(1), DNumber(2), NewList(DNumber(3))))
	testRead(t, "()", NewList())
	testRead(t, "[1 [2]]", NewVector(DNumber(1), NewVector(DNumber(2))))

	d := mustRead(t, `{:a 1 "b" [2]}`)
	hm, ok := d.(*DHashMap)
	if !ok {
		t.Fatalf("expected hash-map, got %#v", d)
	}
	if v, ok := hm.Get(DKeyword("a")); !ok || v != DNumber(1) {
		t.Fatalf(":a: got %v", v)
	}
	if v, ok := hm.Get(DString("b")); !ok || !Equal(v, NewVector(DNumber(2))) {
		t.Fatalf(`"b": got %v`, v)
	}

	if _, ok := mustRead(t, "[1 2]").(*DVector); !ok {
		t.Fatalf("vector should keep its own type")
	}
}

func TestReadSugar(t *testing.T) {
	testRead(t, "'x", NewList(DSymbol("quote"), DSymbol("x")))
	testRead(t, "`x", NewList(DSymbol("quasiquote"), DSymbol("x")))
	testRead(t, "~x", NewList(DSymbol("unquote"), DSymbol("x")))
	testRead(t, "~@x", NewList(DSymbol("splice-unquote"), DSymbol("x")))
	testRead(t, "@a", NewList(DSymbol("deref"), DSymbol("a")))
	testRead(t, "^{:m 1} [1]", NewList(
		DSymbol("with-meta"),
		NewVector(DNumber(1)),
		mustRead(t, "{:m 1}")))
	testRead(t, "'(1 ~@xs)", NewList(DSymbol("quote"),
		NewList(DNumber(1), NewList(DSymbol("splice-unquote"), DSymbol("xs")))))
}

func TestReadComments(t *testing.T) {
	testRead(t, "; leading\n(1 ; inner\n 2)", NewList(DNumber(1), DNumber(2)))

	if _, err := ReadStr(";; only a comment"); !errors.Is(err, ErrNoForm) {
		t.Fatalf("expected ErrNoForm, got %v", err)
	}
	if _, err := ReadStr("   "); !errors.Is(err, ErrNoForm) {
		t.Fatalf("expected ErrNoForm, got %v", err)
	}
}

func TestReadUnterminated(t *testing.T) {
	for _, input := range []string{"(1 2", "[1", "{:a 1", `"abc`, `"abc\"`, "(1 (2)", "'", "(a \"b"} {
		_, err := ReadStr(input)
		if !errors.Is(err, ErrUnexpectedEOF) {
			t.Errorf("read %q: expected unexpected EOF, got %v", input, err)
		}
		if kind, ok := KindOf(err); !ok || kind != SyntaxError {
			t.Errorf("read %q: expected SyntaxError, got %v", input, err)
		}
	}
}

func TestReadErrors(t *testing.T) {
	testReadKind(t, ")", SyntaxError)
	testReadKind(t, "(1 ]", SyntaxError)
	testReadKind(t, "{:a}", SyntaxError)
	testReadKind(t, "{1 2}", TypeError)
	testReadKind(t, "99999999999999999999", SyntaxError)
	testReadKind(t, "(+ 1 -99999999999999999999)", SyntaxError)
}

func TestReadNumberLikeSymbols(t *testing.T) {
	testRead(t, "9x", DSymbol("9x"))
	testRead(t, "1-2", DSymbol("1-2"))
}
