package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/vm"
	"github.com/chzyer/readline"
	"github.com/urfave/cli/v3"
)

// replCommand starts an interactive shell over one persistent VM.
// Grounded on the teacher's runInteractiveShell/executeREPLCode
// (cmd/hey/main.go), with two differences forced by scope: line editing
// comes from chzyer/readline instead of a raw bufio.Scanner (the teacher
// pack's other REPL-shaped entrypoints use readline for history and
// multi-line editing, and there is no AS3-source parser here to drive a
// needsMoreInput-style continuation heuristic off of), and the "code" a
// line submits is a small set of meta-commands over the loaded domain
// rather than AS3 source text (spec.md §1/§6 scope source parsing out).
var replCommand = &cli.Command{
	Name:  "repl",
	Usage: "Start an interactive shell for inspecting a loaded domain",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return runREPL()
	},
}

func runREPL() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "as3vm> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer rl.Close()

	machine := vm.New(vm.WithTraceWriter(os.Stdout))
	var unit *vm.TranslationUnit

	fmt.Fprintln(rl.Stdout(), "as3vm interactive shell. Type :help for commands.")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			if err == io.EOF {
				return nil
			}
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case ":help":
			printREPLHelp(rl.Stdout())
		case ":quit", ":exit":
			return nil
		case ":load":
			if len(fields) != 2 {
				fmt.Fprintln(rl.Stdout(), "usage: :load <file.json>")
				continue
			}
			loaded, err := loadFile(machine, fields[1], true)
			if err != nil {
				fmt.Fprintln(rl.Stdout(), err)
				continue
			}
			unit = loaded
			fmt.Fprintf(rl.Stdout(), "loaded %d script(s)\n", len(unit.Scripts()))
		case ":scripts":
			if unit == nil {
				fmt.Fprintln(rl.Stdout(), "no translation unit loaded, use :load first")
				continue
			}
			for i, s := range unit.Scripts() {
				fmt.Fprintf(rl.Stdout(), "script[%d] %q initialized=%v\n", i, s.Data.Name, s.IsInitialized())
			}
		case ":resolve":
			if len(fields) != 2 {
				fmt.Fprintln(rl.Stdout(), "usage: :resolve <name>")
				continue
			}
			ns := names.NewNamespace(names.Public, "")
			mn := names.NewQNameMultiname(ns, fields[1])
			qn, err := machine.GlobalDomain.ResolveMultiname(machine, mn)
			if err != nil {
				fmt.Fprintln(rl.Stdout(), err)
				continue
			}
			fmt.Fprintf(rl.Stdout(), "%s -> %s\n", fields[1], qn.String())
		case ":pump":
			if len(fields) != 2 {
				fmt.Fprintln(rl.Stdout(), "usage: :pump <enterFrame|exitFrame|frameConstructed>")
				continue
			}
			if err := machine.Pump(fields[1], nil); err != nil {
				fmt.Fprintln(rl.Stdout(), err)
			}
		case ":stack":
			fmt.Fprintln(rl.Stdout(), machine.StackSummary())
		default:
			fmt.Fprintf(rl.Stdout(), "unknown command %q, try :help\n", fields[0])
		}
	}
}

func printREPLHelp(w io.Writer) {
	fmt.Fprintln(w, ":load <file.json>   load and eagerly initialize an ABC-JSON document")
	fmt.Fprintln(w, ":scripts             list the current translation unit's scripts and init state")
	fmt.Fprintln(w, ":resolve <name>      resolve a public name against the global domain")
	fmt.Fprintln(w, ":pump <type>         pump a broadcast event (enterFrame/exitFrame/frameConstructed)")
	fmt.Fprintln(w, ":stack               show the current call-stack depth")
	fmt.Fprintln(w, ":quit                exit the shell")
}
