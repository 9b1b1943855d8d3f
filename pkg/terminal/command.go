// Package terminal implements the interactive trace shell of fonative.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cosiner/argv"
	"github.com/derekparker/trie"
	"github.com/spf13/pflag"

	"github.com/kusumi/fileobj/pkg/disasm"
)

type cmdfunc func(t *Term, args []string) error

type command struct {
	aliases        []string
	builtinAliases []string
	group          commandGroup
	helpMsg        string
	cmdFn          cmdfunc
}

// Returns true if the command string matches one of the aliases for this command
func (c command) match(cmdstr string) bool {
	for _, v := range c.aliases {
		if v == cmdstr {
			return true
		}
	}
	return false
}

// Commands represents the commands of the trace shell.
type Commands struct {
	cmds  []command
	names *trie.Trie
}

// ExitRequestError is returned when the user
// exits the shell.
type ExitRequestError struct{}

func (ere ExitRequestError) Error() string {
	return ""
}

// byFirstAlias will sort by the first
// alias of a command.
type byFirstAlias []command

func (a byFirstAlias) Len() int           { return len(a) }
func (a byFirstAlias) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byFirstAlias) Less(i, j int) bool { return a[i].aliases[0] < a[j].aliases[0] }

// ShellCommands returns a Commands struct with default commands defined.
func ShellCommands() *Commands {
	c := &Commands{}

	c.cmds = []command{
		{aliases: []string{"help", "h"}, cmdFn: c.help, helpMsg: `Prints the help message.

	help [command]

Type "help" followed by the name of a command for more information about it.`},
		{aliases: []string{"peek", "x"}, group: memoryCmds, cmdFn: peekText, helpMsg: `Reads words from the text space.

	peek [-n count] [-d] [-s intel|gnu|go] <address>

Reads count consecutive words starting at address, one word by default or
the peek-count of the config file. With -d the words read are also
decoded as x86 instructions, printed in the syntax selected by -s or by
the disassemble-flavor of the config file.`},
		{aliases: []string{"peekdata", "xd"}, group: memoryCmds, cmdFn: peekData, helpMsg: `Reads words from the data space.

	peekdata [-n count] [-d] [-s intel|gnu|go] <address>

See also: "help peek".`},
		{aliases: []string{"poke"}, group: memoryCmds, cmdFn: pokeText, helpMsg: `Writes one word to the text space.

	poke <address> <word>`},
		{aliases: []string{"pokedata"}, group: memoryCmds, cmdFn: pokeData, helpMsg: `Writes one word to the data space.

	pokedata <address> <word>`},
		{aliases: []string{"wordsize", "ws"}, group: memoryCmds, cmdFn: wordSize, helpMsg: "Prints the size in bytes of the words read and written by peek and poke."},
		{aliases: []string{"continue", "cont", "c"}, group: runCmds, cmdFn: cont, helpMsg: `Resumes the stopped process.

The process keeps running while traced. Most requests fail until it
stops again.`},
		{aliases: []string{"kill"}, group: runCmds, cmdFn: kill, helpMsg: "Kills the process and exits the shell."},
		{aliases: []string{"detach"}, group: runCmds, cmdFn: detach, helpMsg: "Detaches from the process and exits the shell."},
		{aliases: []string{"exit", "quit", "q"}, cmdFn: exitCommand, helpMsg: `Exits the shell.

The process is detached from first if it is stopped.`},
	}

	sort.Sort(byFirstAlias(c.cmds))
	c.index()
	return c
}

// index rebuilds the completion trie.
func (c *Commands) index() {
	c.names = trie.New()
	for _, cmd := range c.cmds {
		for _, alias := range cmd.aliases {
			c.names.Add(alias, nil)
		}
	}
}

// Complete returns the command names starting with prefix, shortest first.
func (c *Commands) Complete(prefix string) []string {
	names := c.names.PrefixSearch(strings.ToLower(prefix))
	sort.SliceStable(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// Find will look up the command function for the given command input.
// If it cannot find the command it will default to noCmdAvailable().
// If the command is an empty string it will do nothing.
func (c *Commands) Find(cmdstr string) cmdfunc {
	if cmdstr == "" {
		return nullCommand
	}

	for _, v := range c.cmds {
		if v.match(cmdstr) {
			return v.cmdFn
		}
	}

	return noCmdAvailable
}

// Call takes a command to execute.
func (c *Commands) Call(cmdstr string, t *Term) error {
	if strings.TrimSpace(cmdstr) == "" {
		return nil
	}
	args, err := splitArgs(cmdstr)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	return c.Find(args[0])(t, args[1:])
}

// Merge takes aliases defined in the config struct and merges them with the default aliases.
func (c *Commands) Merge(allAliases map[string][]string) {
	for i := range c.cmds {
		if c.cmds[i].builtinAliases != nil {
			c.cmds[i].aliases = append(c.cmds[i].aliases[:0], c.cmds[i].builtinAliases...)
		}
	}
	for i := range c.cmds {
		if aliases, ok := allAliases[c.cmds[i].aliases[0]]; ok {
			if c.cmds[i].builtinAliases == nil {
				c.cmds[i].builtinAliases = make([]string, len(c.cmds[i].aliases))
				copy(c.cmds[i].builtinAliases, c.cmds[i].aliases)
			}
			c.cmds[i].aliases = append(c.cmds[i].aliases, aliases...)
		}
	}
	c.index()
}

// splitArgs splits one command line into words, honoring quotes.
func splitArgs(cmdstr string) ([]string, error) {
	v, err := argv.Argv(cmdstr,
		func(s string) (string, error) {
			return "", fmt.Errorf("Backtick not supported in '%s'", s)
		},
		nil)
	if err != nil {
		return nil, err
	}
	if len(v) > 1 {
		return nil, fmt.Errorf("illegal commandline '%s'", cmdstr)
	}
	if len(v) == 0 {
		return nil, nil
	}
	return v[0], nil
}

var noCmdError = errors.New("command not available")

func noCmdAvailable(t *Term, args []string) error {
	return noCmdError
}

func nullCommand(t *Term, args []string) error {
	return nil
}

func (c *Commands) help(t *Term, args []string) error {
	if len(args) > 0 {
		for _, cmd := range c.cmds {
			if cmd.match(args[0]) {
				fmt.Fprintln(t.stdout, cmd.helpMsg)
				return nil
			}
		}
		return noCmdError
	}

	fmt.Fprintln(t.stdout, "The following commands are available:")

	for _, cgd := range commandGroupDescriptions {
		fmt.Fprintf(t.stdout, "\n%s:\n", cgd.description)
		w := new(tabwriter.Writer)
		w.Init(t.stdout, 0, 8, 0, '-', 0)
		for _, cmd := range c.cmds {
			if cmd.group != cgd.group {
				continue
			}
			h := cmd.helpMsg
			if idx := strings.Index(h, "\n"); idx >= 0 {
				h = h[:idx]
			}
			if len(cmd.aliases) > 1 {
				fmt.Fprintf(w, "    %s (alias: %s) \t %s\n", cmd.aliases[0], strings.Join(cmd.aliases[1:], " | "), h)
			} else {
				fmt.Fprintf(w, "    %s \t %s\n", cmd.aliases[0], h)
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(t.stdout)
	fmt.Fprintln(t.stdout, "Type help followed by a command for full documentation.")
	return nil
}

func peekText(t *Term, args []string) error {
	return peekCommand(t, "peek", args, false)
}

func peekData(t *Term, args []string) error {
	return peekCommand(t, "peekdata", args, true)
}

func peekCommand(t *Term, name string, args []string, data bool) error {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	count := fs.IntP("count", "n", t.conf.Count(), "number of words")
	dis := fs.BoolP("disasm", "d", t.conf.Disassemble, "decode as x86 instructions")
	syntax := fs.StringP("syntax", "s", t.conf.DisassembleFlavor, "assembly syntax")
	if err := fs.Parse(args); err != nil {
		return err
	}
	flavour, err := disasm.ParseFlavour(*syntax)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("wrong number of arguments: %s [-n count] [-d] <address>", name)
	}
	if *count <= 0 {
		return fmt.Errorf("count must be positive, not %d", *count)
	}
	addr, err := ParseAddr(fs.Arg(0))
	if err != nil {
		return err
	}

	words, err := PeekWords(t.tracer, t.pid, addr, *count, data)
	PrintWords(t.stdout, addr, words)
	if err != nil {
		return err
	}
	if *dis {
		return PrintDisasm(t.stdout, addr, words, flavour)
	}
	return nil
}

func pokeText(t *Term, args []string) error {
	return pokeCommand(t, "poke", args, t.tracer.PokeText)
}

func pokeData(t *Term, args []string) error {
	return pokeCommand(t, "pokedata", args, t.tracer.PokeData)
}

func pokeCommand(t *Term, name string, args []string, poke func(pid int, addr int64, word int64) error) error {
	if len(args) != 2 {
		return fmt.Errorf("wrong number of arguments: %s <address> <word>", name)
	}
	addr, err := ParseAddr(args[0])
	if err != nil {
		return err
	}
	word, err := ParseWord(args[1])
	if err != nil {
		return err
	}
	return poke(t.pid, addr, word)
}

func wordSize(t *Term, args []string) error {
	fmt.Fprintln(t.stdout, t.tracer.WordSize())
	return nil
}

func cont(t *Term, args []string) error {
	if err := t.tracer.Cont(t.pid); err != nil {
		return err
	}
	t.running = true
	fmt.Fprintf(t.stdout, "process %d resumed\n", t.pid)
	return nil
}

func kill(t *Term, args []string) error {
	if err := t.tracer.Kill(t.pid); err != nil {
		return err
	}
	t.released = true
	fmt.Fprintf(t.stdout, "process %d killed\n", t.pid)
	return ExitRequestError{}
}

func detach(t *Term, args []string) error {
	if err := t.tracer.Detach(t.pid); err != nil {
		return err
	}
	t.released = true
	fmt.Fprintf(t.stdout, "detached from process %d\n", t.pid)
	return ExitRequestError{}
}

func exitCommand(t *Term, args []string) error {
	return ExitRequestError{}
}
