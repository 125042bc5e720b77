// Package maincmd implements the lox command-line tool: the bare
// zero/one-argument REPL and run-file modes the spec defines, plus a pair
// of debug subcommands (tokenize, disassemble) for inspecting the
// compiler's output on demand.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "lox"

// Exit codes, per the spec's external-interface section: 0 on success, 65
// on a compile error, 70 on a runtime error, 74 when the source file could
// not be read, 64 on a usage error. These follow the sysexits.h convention
// the reference implementation uses, not mainer's own Success/Failure pair.
const (
	ExitOK           = mainer.ExitCode(0)
	ExitUsage        = mainer.ExitCode(64)
	ExitCompileError = mainer.ExitCode(65)
	ExitRuntimeError = mainer.ExitCode(70)
	ExitIOError      = mainer.ExitCode(74)
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<command>] [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<script>]
       %[1]s [<option>...] <command> <path>...
       %[1]s -h|--help
       %[1]s -v|--version

With no arguments, starts an interactive REPL. With one argument that is
not a known <command>, treats it as a script path to run to completion.

The <command> can be one of:
       tokenize                  Scan the given files and print their
                                 tokens, one per line.
       disassemble               Compile the given files and print their
                                 bytecode disassembly.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

More information on the %[1]s repository:
       https://github.com/loxvm/lox
`, binName)
)

// Cmd holds parsed flags and dispatches to either the bare REPL/run-file
// behavior or one of the reflection-discovered debug subcommands, the same
// split the teacher's own Cmd uses.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) {}

// Validate resolves c.args into either the bare REPL/run-file path (left
// for Main to dispatch) or a named debug subcommand, matching it against
// Cmd's own methods by reflection exactly as the teacher's buildCmds does.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return nil // bare REPL
	}

	if fn, ok := buildCmds(c)[c.args[0]]; ok {
		c.cmdFn = fn
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", c.args[0])
		}
		return nil
	}

	if len(c.args) > 1 {
		return errors.New("too many arguments: expected at most one script path")
	}
	return nil // bare run-file
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: strings.ToUpper(binName) + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return ExitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return ExitOK
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return ExitOK
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	switch {
	case c.cmdFn != nil:
		if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			return ExitUsage
		}
		return ExitOK
	case len(c.args) == 0:
		return runREPL(ctx, stdio)
	default:
		return runFile(ctx, stdio, c.args[0])
	}
}

// buildCmds mirrors the teacher's reflection-based subcommand discovery:
// any exported method of v matching func(*Cmd, context.Context,
// mainer.Stdio, []string) error becomes a subcommand named after its
// lowercased method name.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
