package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/xyproto/vt"

	"github.com/bshepherdson/mal/interp"
	"github.com/bshepherdson/mal/reader"
	"github.com/bshepherdson/mal/types"
)

const promptCont = "   ...> "

func main() {
	cfg := interp.ConfigFromEnv()

	if len(os.Args) > 1 {
		os.Exit(runFile(cfg, os.Args[1], os.Args[2:]))
	}
	os.Exit(repl(cfg))
}

// start builds the interpreter, reporting a failure on stderr.
func start(cfg interp.Config, ln *liner.State) (*interp.Interpreter, bool) {
	ip, err := interp.New(cfg, os.Stdout, ln)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start interpreter: %v\n", err)
		return nil, false
	}
	return ip, true
}

// runFile loads path with *ARGV* bound to argv. readline still reads from
// stdin; liner falls back to plain line reads when stdin is not a terminal.
func runFile(cfg interp.Config, path string, argv []string) int {
	ln := liner.NewLiner()
	defer ln.Close()

	ip, ok := start(cfg, ln)
	if !ok {
		return 1
	}
	if err := ip.LoadFile(path, argv); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, interp.FormatError(err))
		return 1
	}
	return 0
}

func repl(cfg interp.Config) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryPath != "" {
		if f, err := os.Open(cfg.HistoryPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	ip, ok := start(cfg, ln)
	if !ok {
		return 1
	}
	for {
		out, ok := readEval(ip, ln, cfg)
		if !ok {
			fmt.Println()
			return 0
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}

// readEval reads lines until they hold a complete form, then hands the
// input to Rep. It returns false at end of input.
func readEval(ip *interp.Interpreter, ln *liner.State, cfg interp.Config) (string, bool) {
	var b strings.Builder
	for {
		p := cfg.Prompt
		if b.Len() > 0 {
			p = promptCont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			log.Printf("readline: %v", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		input := b.String()

		// Only a read of the input itself may ask for more lines. An
		// unexpected EOF raised later, by read-string, is an ordinary error.
		_, err = ip.Read(input)
		if errors.Is(err, types.ErrUnexpectedEOF) {
			continue
		}
		if errors.Is(err, reader.ErrNoForm) {
			return "", true
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		out, err := ip.Rep(input)
		if err != nil {
			msg := interp.FormatError(err)
			if cfg.Color {
				msg = vt.LightRed.Get(msg)
			}
			return msg, true
		}
		return out, true
	}
}
