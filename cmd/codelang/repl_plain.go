package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
)

const historyFile = ".codelang_history"

// lineReader returns the next input line, or io.EOF when the input is done.
// Any other error abandons the statement being typed.
type lineReader func(prompt string) (string, error)

// runPlainREPL drives a session from a line editor when attached to a
// terminal and from plain stdin otherwise.
func runPlainREPL(session *replSession, interactive bool) error {
	if !interactive {
		return replLoop(bufferedReader(session.input), session, os.Stdout, os.Stderr)
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(session.completeLine)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		if _, ok := <-sigc; ok {
			ln.Close()
			os.Exit(130)
		}
	}()

	read := func(prompt string) (string, error) {
		line, err := ln.Prompt(prompt)
		if err == nil && strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		return line, err
	}
	fmt.Println("CODE REPL. Type :help for commands.")
	return replLoop(read, session, os.Stdout, os.Stderr)
}

// bufferedReader reads lines from r, which may be shared with SCAN.
func bufferedReader(r *bufio.Reader) lineReader {
	return func(string) (string, error) {
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

// replLoop reads statements until EOF or :quit, writing results to out and
// failures to errOut.
func replLoop(read lineReader, session *replSession, out, errOut io.Writer) error {
	for {
		res, input, ok := readStatement(read, session)
		if !ok {
			return nil
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if quit := plainCommand(trimmed, session, out, errOut); quit {
				return nil
			}
			continue
		}
		if res.isErr {
			fmt.Fprintln(errOut, res.output)
			continue
		}
		writeResult(out, res)
	}
}

// readStatement keeps prompting while the buffered source parses as an
// unfinished statement.
func readStatement(read lineReader, session *replSession) (replResult, string, bool) {
	var b strings.Builder
	for {
		prompt := mainPrompt
		if b.Len() > 0 {
			prompt = continuationPrompt
		}
		line, err := read(prompt)
		if errors.Is(err, io.EOF) {
			return replResult{}, "", false
		}
		if err != nil {
			return replResult{}, "", true
		}

		if b.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, ":") {
				return replResult{}, line, true
			}
		} else {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		res := session.evaluate(b.String())
		if res.incomplete {
			continue
		}
		return res, b.String(), true
	}
}

func plainCommand(input string, session *replSession, out, errOut io.Writer) bool {
	switch strings.Fields(input)[0] {
	case ":quit", ":q":
		return true
	case ":reset", ":r":
		session.reset()
		fmt.Fprintln(out, "Environment reset")
	case ":vars", ":v":
		vars := session.vars()
		if len(vars) == 0 {
			fmt.Fprintln(out, "No variables defined")
		}
		for _, v := range vars {
			fmt.Fprintln(out, v)
		}
	case ":help", ":h":
		for _, c := range replCommands {
			fmt.Fprintf(out, "  %-7s %-3s %s\n", c.name, c.alias, c.desc)
		}
	default:
		fmt.Fprintf(errOut, "Unknown command: %s\n", input)
	}
	return false
}

// completeLine completes the last word of line for the line editor.
func (s *replSession) completeLine(line string) []string {
	start := len(line)
	for start > 0 && isWordRune(rune(line[start-1])) {
		start--
	}
	word := line[start:]
	if word == "" {
		return nil
	}
	matches := s.completions(word)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = line[:start] + m
	}
	return out
}
