package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mgomes/codelang/lang"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "lsp":
		return runLSP()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("codelang run: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	cfg, logger, err := common.load()
	if err != nil {
		return err
	}
	engineCfg, _, err := cfg.engineConfig(logger)
	if err != nil {
		return err
	}
	engineCfg.Stdout = os.Stdout
	engineCfg.Stdin = os.Stdin
	engineCfg.Stderr = os.Stderr
	engine, err := lang.NewEngine(engineCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("running script", "path", scriptPath)
	_, err = engine.Run(ctx, string(input), engine.NewEnv())
	if err != nil {
		var re *lang.RuntimeError
		if errors.As(err, &re) {
			return fmt.Errorf("execution failed: %w", err)
		}
		return fmt.Errorf("parse failed: %w", err)
	}
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run <script>      evaluate a program")
	fmt.Fprintln(os.Stderr, "  check <script>    report diagnostics and unreachable code")
	fmt.Fprintln(os.Stderr, "  fmt <path>...     normalise whitespace (-w, -check, -ast)")
	fmt.Fprintln(os.Stderr, "  repl              interactive session (-plain for a line editor)")
	fmt.Fprintln(os.Stderr, "  lsp               language server over stdio")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -config string")
	fmt.Fprintln(os.Stderr, "    YAML config file (default ~/"+configFileName+")")
	fmt.Fprintln(os.Stderr, "  -log-level string")
	fmt.Fprintln(os.Stderr, "    debug, info, warn or error (default warn)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
