// Package subcmd parses the flags and positional arguments of one musiclib
// subcommand.
package subcmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func New(name, doc string) *Subcommand {
	sc := &Subcommand{
		FlagSet: flag.NewFlagSet(name, flag.ContinueOnError),
		name:    name,
		doc:     doc,
		out:     os.Stderr,
	}
	sc.FlagSet.SetOutput(sc.out)
	sc.FlagSet.Usage = sc.usage
	return sc
}

type Subcommand struct {
	*flag.FlagSet
	name, doc string
	arg       *arg
	out       io.Writer
}

type arg struct {
	name     string
	typename string
	usage    string
	choices  []string
}

// SetArg declares the single positional argument the subcommand requires.
// If choices are given, the argument must be one of them.
func (sc *Subcommand) SetArg(name, typename, usage string, choices ...string) *Subcommand {
	sc.arg = &arg{name, typename, usage, choices}
	return sc
}

// Parse parses flags, then checks the positional argument declared with
// SetArg, if any.
func (sc *Subcommand) Parse(args []string) error {
	if err := sc.FlagSet.Parse(args); err != nil {
		return err
	}
	if sc.arg == nil {
		return nil
	}
	if sc.NArg() != 1 {
		sc.Usage()
		return fmt.Errorf("%s takes exactly one <%s>", sc.name, sc.arg.name)
	}
	if len(sc.arg.choices) > 0 && !slices.Contains(sc.arg.choices, sc.Arg(0)) {
		sc.Usage()
		return fmt.Errorf("unsupported %s '%s'", sc.arg.name, sc.Arg(0))
	}
	return nil
}

func (sc *Subcommand) usage() {
	argSuffix := ""
	if sc.arg != nil {
		argSuffix = fmt.Sprintf(" <%s>", sc.arg.name)
	}
	fmt.Fprintf(sc.out, "\n%s\n\n", sc.doc)
	fmt.Fprintf(sc.out, "  musiclib %s [flags]%s\n\n", sc.name, argSuffix)
	fmt.Fprintf(sc.out, "flags:\n")
	sc.FlagSet.PrintDefaults()
	if sc.arg != nil {
		fmt.Fprintf(sc.out, "  <%s> %s\n", sc.arg.name, sc.arg.typename)
		fmt.Fprintf(sc.out, "  \t%s\n", sc.arg.usage)
		if len(sc.arg.choices) > 0 {
			fmt.Fprintf(sc.out, "  \tone of: %s\n", strings.Join(sc.arg.choices, ", "))
		}
	}
}
