package cmds

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/kusumi/fileobj/pkg/config"
	"github.com/kusumi/fileobj/pkg/disasm"
	"github.com/kusumi/fileobj/pkg/logflags"
	"github.com/kusumi/fileobj/pkg/native"
	"github.com/kusumi/fileobj/pkg/terminal"
	"github.com/kusumi/fileobj/pkg/version"
)

// backend is what every command talks to.
type backend interface {
	native.Prober
	native.Tracer
}

var (
	// log is whether to log debug statements.
	log bool
	// logOutput is a comma separated list of components that should produce debug output.
	logOutput string
	// logDest is the file path or file descriptor where logs should go.
	logDest string

	// force skips the block device check of blkdev.
	force bool
	// peekData selects the data space for peek and poke.
	peekData bool
	// peekCount is the number of words read by peek.
	peekCount int
	// disassemble is whether peek decodes the words it read.
	disassemble bool
	// syntax is the assembly syntax of the decoded words.
	syntax string

	// rootCommand is the root of the command tree.
	rootCommand *cobra.Command

	host backend = native.Host{}

	conf *config.Config
)

const fonativeCommandLongDesc = `fonative queries block device geometry and issues process trace
requests against a live process.

Every command maps to one kernel request, or to one request per
argument or word. No state is kept between invocations.`

// New returns an initialized command tree.
func New() *cobra.Command {
	// Config setup and load.
	conf = config.LoadConfig()

	// Main fonative root command.
	rootCommand = &cobra.Command{
		Use:           "fonative",
		Short:         "fonative is a native block device and process trace tool.",
		Long:          fonativeCommandLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logflags.Setup(log, logOutput, logDest)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logflags.Close()
		},
	}

	rootCommand.PersistentFlags().BoolVarP(&log, "log", "", false, "Enable logging.")
	rootCommand.PersistentFlags().StringVarP(&logOutput, "log-output", "", "", `Comma separated list of components that should produce debug output (blkdev, ptrace, shell).`)
	rootCommand.PersistentFlags().StringVarP(&logDest, "log-dest", "", "", "Writes logs to the specified file or file descriptor.")

	// 'blkdev' subcommand.
	blkdevCommand := &cobra.Command{
		Use:   "blkdev path...",
		Short: "Print the geometry of block devices.",
		Long: `Print the size, sector size and label of each block device.

Paths that are not block devices are refused unless --force is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: blkdevCmd,
	}
	blkdevCommand.Flags().BoolVarP(&force, "force", "f", false, "Query paths that are not block devices.")
	rootCommand.AddCommand(blkdevCommand)

	// Process control subcommands.
	for _, c := range []struct {
		use, short string
		fn         func(backend, int) error
		done       string
	}{
		{"attach", "Attach to a process.", backend.Attach, "attached to"},
		{"detach", "Detach from a stopped process.", backend.Detach, "detached from"},
		{"cont", "Resume a stopped process.", backend.Cont, "resumed"},
		{"kill", "Kill a traced process.", backend.Kill, "killed"},
	} {
		c := c
		rootCommand.AddCommand(&cobra.Command{
			Use:   c.use + " pid",
			Short: c.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pid, err := parsePid(args[0])
				if err != nil {
					return err
				}
				if err := c.fn(host, pid); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", c.done, pid)
				return nil
			},
		})
	}

	// 'peek' subcommand.
	peekCommand := &cobra.Command{
		Use:   "peek pid address",
		Short: "Read words from a stopped traced process.",
		Long: `Read consecutive words from the text space of a process, or from its
data space with --data. The process must already be traced and stopped by
this thread, which in practice is only the case from the shell subcommand
on Linux.`,
		Args: cobra.ExactArgs(2),
		RunE: peekCmd,
	}
	peekCommand.Flags().BoolVarP(&peekData, "data", "D", false, "Read the data space.")
	peekCommand.Flags().IntVarP(&peekCount, "count", "n", conf.Count(), "Number of words to read.")
	peekCommand.Flags().BoolVarP(&disassemble, "disasm", "d", conf.Disassemble, "Decode the words read as x86 instructions.")
	peekCommand.Flags().StringVarP(&syntax, "syntax", "s", conf.DisassembleFlavor, "Assembly syntax of decoded words (intel, gnu, go).")
	rootCommand.AddCommand(peekCommand)

	// 'poke' subcommand.
	pokeCommand := &cobra.Command{
		Use:   "poke pid address word",
		Short: "Write one word to a stopped traced process.",
		Args:  cobra.ExactArgs(3),
		RunE:  pokeCmd,
	}
	pokeCommand.Flags().BoolVarP(&peekData, "data", "D", false, "Write the data space.")
	rootCommand.AddCommand(pokeCommand)

	// 'shell' subcommand.
	shellCommand := &cobra.Command{
		Use:   "shell pid",
		Short: "Attach to a process and start an interactive trace shell.",
		Long: `Attach to a process and start an interactive trace shell.

The process is detached from when the shell exits, unless it was killed
or left running.`,
		Args: cobra.ExactArgs(1),
		RunE: shellCmd,
	}
	rootCommand.AddCommand(shellCommand)

	// 'config' subcommand.
	rootCommand.AddCommand(&cobra.Command{
		Use:   "config [option value]",
		Short: "Print or change the configuration file.",
		Long: `Without arguments print the options read from the configuration file.
With an option and a value, change that option and save the file.

Options: size-units, peek-count, disassemble, disassemble-flavor.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.New("expected no arguments or an option and a value")
			}
			return nil
		},
		RunE: configCmd,
	})

	// 'wordsize' subcommand.
	rootCommand.AddCommand(&cobra.Command{
		Use:   "wordsize",
		Short: "Print the size in bytes of a peek or poke word.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), host.WordSize())
		},
	})

	// 'platform' subcommand.
	rootCommand.AddCommand(&cobra.Command{
		Use:   "platform",
		Short: "Print the compiled-in implementations.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printDescription(cmd.OutOrStdout(), native.Describe())
		},
	})

	// 'version' subcommand.
	var buildInfo bool
	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Prints version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fonative\n%s\n", version.FonativeVersion)
			if buildInfo {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version.BuildInfo())
			}
		},
	}
	versionCommand.Flags().BoolVarP(&buildInfo, "build-info", "", false, "Print build info")
	rootCommand.AddCommand(versionCommand)

	return rootCommand
}

func parsePid(s string) (int, error) {
	pid, err := strconv.Atoi(s)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid: %s", s)
	}
	return pid, nil
}

func formatSize(size uint64) string {
	if conf.Units() == config.UnitsDecimal {
		return humanize.Bytes(size)
	}
	return humanize.IBytes(size)
}

func blkdevCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var failed error
	for _, path := range args {
		if err := printBlkdev(out, path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
			failed = errors.New("some paths could not be queried")
		}
	}
	return failed
}

func printBlkdev(out io.Writer, path string) error {
	if !force {
		ok, err := host.IsBlockDevice(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !ok {
			return fmt.Errorf("%s is not blkdev", path)
		}
	}
	info, err := host.Query(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(out, "%s: size=%d (%s) sector_size=%d", path, info.Size, formatSize(info.Size), info.SectorSize)
	if info.Label != "" {
		fmt.Fprintf(out, " label=%q", info.Label)
	}
	fmt.Fprintln(out)
	return nil
}

func peekCmd(cmd *cobra.Command, args []string) error {
	pid, err := parsePid(args[0])
	if err != nil {
		return err
	}
	addr, err := terminal.ParseAddr(args[1])
	if err != nil {
		return err
	}
	if peekCount <= 0 {
		return fmt.Errorf("count must be positive, not %d", peekCount)
	}
	words, err := terminal.PeekWords(host, pid, addr, peekCount, peekData)
	terminal.PrintWords(cmd.OutOrStdout(), addr, words)
	if err != nil {
		return err
	}
	if disassemble {
		flavour, err := disasm.ParseFlavour(syntax)
		if err != nil {
			return err
		}
		return terminal.PrintDisasm(cmd.OutOrStdout(), addr, words, flavour)
	}
	return nil
}

func pokeCmd(cmd *cobra.Command, args []string) error {
	pid, err := parsePid(args[0])
	if err != nil {
		return err
	}
	addr, err := terminal.ParseAddr(args[1])
	if err != nil {
		return err
	}
	word, err := terminal.ParseWord(args[2])
	if err != nil {
		return err
	}
	if peekData {
		return host.PokeData(pid, addr, word)
	}
	return host.PokeText(pid, addr, word)
}

func shellCmd(cmd *cobra.Command, args []string) error {
	pid, err := parsePid(args[0])
	if err != nil {
		return err
	}
	// The shell must issue every request from the attaching thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := host.Attach(pid); err != nil {
		return err
	}
	if err := waitStopped(pid); err != nil {
		host.Detach(pid)
		return err
	}
	term := terminal.New(host, pid, conf)
	status, err := term.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if status != 0 {
		os.Exit(status)
	}
	return nil
}

func configCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 2 {
		if err := conf.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.SaveConfig(conf); err != nil {
			return fmt.Errorf("could not save config: %w", err)
		}
	}
	out, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func printDescription(out io.Writer, d native.Description) {
	fmt.Fprintf(out, "platform:     %s\n", d.Platform)
	fmt.Fprintf(out, "blkdev query: %v\n", d.BlockDevice.Query)
	fmt.Fprintf(out, "blkdev label: %v\n", d.BlockDevice.Label)
	fmt.Fprintf(out, "ptrace:       %v\n", d.Trace.Control)
	fmt.Fprintf(out, "peek/poke:    %v\n", d.Trace.WordAccess)
	fmt.Fprintf(out, "word size:    %v\n", d.WordSize)
}
