package reader

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hucsmn/peg"

	. "github.com/bshepherdson/mal/types"
)

// ErrNoForm is returned for input holding only whitespace and comments.
var ErrNoForm = errors.New("no form to read")

type token string

func (token) IsTerminal() bool { return true }

func tokenCons(lit string, _ peg.Position) (peg.Capture, error) {
	return token(lit), nil
}

// Token grammar. Strings may be left unterminated here; readAtom reports them.
var (
	tokSpace   = peg.Q0(peg.S(" \t\r\n\v\f,"))
	tokAnyRune = peg.R(0, utf8.MaxRune)
	tokComment = peg.Seq(peg.T(";"), peg.Q0(peg.R(0, '\t', '\v', utf8.MaxRune)))
	tokSpecial = peg.Alt(peg.T("~@"), peg.S("[]{}()'`~^@"))
	tokString  = peg.Seq(
		peg.T(`"`),
		peg.Q0(peg.Alt(
			peg.Seq(peg.T(`\`), tokAnyRune),
			peg.R(0, '!', '#', '[', ']', utf8.MaxRune))),
		peg.Q01(peg.T(`"`)))
	// Anything but whitespace and []{}()'"`,;
	tokAtom = peg.Q1(peg.R(
		0x00, 0x08,
		0x0e, 0x1f,
		'!', '!',
		'#', '&',
		'*', '+',
		'-', ':',
		'<', 'Z',
		'\\', '\\',
		'^', '_',
		'a', 'z',
		'|', '|',
		'~', utf8.MaxRune))

	tokenizerPattern = peg.Seq(
		tokSpace,
		peg.Q0(peg.Seq(
			peg.Alt(
				tokComment,
				peg.CT(tokenCons, peg.Alt(tokSpecial, tokString, tokAtom))),
			tokSpace)))
)

type MalReader struct {
	tokens []string
	index  int
}

func (r *MalReader) Next() (string, bool) {
	t, ok := r.Peek()
	if !ok {
		return t, false
	}

	r.index++
	return t, true
}

func (r *MalReader) Peek() (string, bool) {
	if r.index >= len(r.tokens) {
		return "EOF", false
	}
	return r.tokens[r.index], true
}

func tokenizer(input string) ([]string, error) {
	caps, err := peg.Parse(tokenizerPattern, input)
	if err != nil {
		return nil, Errorf(SyntaxError, "tokenization error: %v", err)
	}

	t := make([]string, 0, len(caps))
	for _, c := range caps {
		tok, ok := c.(token)
		if !ok {
			return nil, Errorf(SyntaxError, "tokenization error: unexpected capture %v", c)
		}
		t = append(t, string(tok))
	}
	return t, nil
}

// ReadStr reads the first form in input.
func ReadStr(input string) (Data, error) {
	tokens, err := tokenizer(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrNoForm
	}

	r := &MalReader{tokens, 0}
	return ReadForm(r)
}

func ReadForm(r *MalReader) (Data, error) {
	t, ok := r.Peek()
	if !ok {
		return nil, UnexpectedEOF("expected form, got EOF")
	}

	switch t {
	case "'":
		return nextWrapped(r, "quote")
	case "`":
		return nextWrapped(r, "quasiquote")
	case "~":
		return nextWrapped(r, "unquote")
	case "~@":
		return nextWrapped(r, "splice-unquote")
	case "@":
		return nextWrapped(r, "deref")
	case "^":
		return readWithMeta(r)
	case "(":
		return readList(r, ")")
	case "[":
		return readList(r, "]")
	case "{":
		return readList(r, "}")
	case ")", "]", "}":
		r.Next()
		return nil, Errorf(SyntaxError, "unexpected '%s'", t)
	default:
		return readAtom(r)
	}
}

func nextWrapped(r *MalReader, wrapper string) (Data, error) {
	r.Next()
	next, err := ReadForm(r)
	if err != nil {
		return nil, err
	}
	return NewList(DSymbol(wrapper), next), nil
}

// ^meta form reads as (with-meta form meta).
func readWithMeta(r *MalReader) (Data, error) {
	r.Next()
	meta, err := ReadForm(r)
	if err != nil {
		return nil, err
	}
	form, err := ReadForm(r)
	if err != nil {
		return nil, err
	}
	return NewList(DSymbol("with-meta"), form, meta), nil
}

func readList(r *MalReader, closer string) (Data, error) {
	r.Next() // Skip the opener.
	ret := []Data{}
	t, ok := r.Peek()
	for ; t != closer && ok; t, ok = r.Peek() {
		f, err := ReadForm(r)
		if err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
	if !ok {
		return nil, UnexpectedEOF("expected '%s', got EOF", closer)
	}
	r.Next() // Skip the closer.

	switch closer {
	case "]":
		return NewVector(ret...), nil
	case "}":
		if len(ret)%2 != 0 {
			return nil, Errorf(SyntaxError, "map literal must contain an even number of forms, got %d", len(ret))
		}
		return NewHashMap(ret...)
	}
	return NewList(ret...), nil
}

func readAtom(r *MalReader) (Data, error) {
	t, ok := r.Next()
	if !ok {
		return nil, UnexpectedEOF("expected atom, got EOF")
	}

	switch {
	case t[0] == '"':
		return readString(t)
	case t[0] == ':':
		return DKeyword(t[1:]), nil
	case t == "nil":
		return Nil, nil
	case t == "true":
		return True, nil
	case t == "false":
		return False, nil
	}

	n, err := strconv.Atoi(t)
	if err == nil {
		return DNumber(n), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return nil, Errorf(SyntaxError, "integer literal %s out of range", t)
	}
	return DSymbol(t), nil
}

// readString decodes a string token, quotes included.
func readString(t string) (Data, error) {
	var b strings.Builder
	wasSlash := false
	for i, c := range t[1:] {
		if wasSlash {
			switch c {
			case 'n':
				b.WriteByte('\n')
			default:
				b.WriteRune(c)
			}
			wasSlash = false
			continue
		}
		switch c {
		case '\\':
			wasSlash = true
		case '"':
			if i+2 != len(t) {
				return nil, Errorf(SyntaxError, "malformed string token %s", t)
			}
			return DString(b.String()), nil
		default:
			b.WriteRune(c)
		}
	}
	return nil, UnexpectedEOF("expected '\"', got EOF")
}
