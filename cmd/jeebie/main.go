package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"github.com/urfave/cli"

	"github.com/valerio/go-jeebie-cpu/jeebie"
	"github.com/valerio/go-jeebie-cpu/jeebie/cpu"
	"github.com/valerio/go-jeebie-cpu/jeebie/disasm"
	"github.com/valerio/go-jeebie-cpu/jeebie/memory"
	"github.com/valerio/go-jeebie-cpu/jeebie/monitor"
	"github.com/valerio/go-jeebie-cpu/jeebie/timing"
	"github.com/valerio/go-jeebie-cpu/jeebie/trace"
)

var romFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "rom",
		Usage: "Path to the ROM file (.gb, .gz, .zip or .7z)",
	},
	cli.StringFlag{
		Name:  "boot-rom",
		Usage: "Path to a 256 byte DMG boot ROM, execution starts at 0x0000 when set",
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "Jeebie"
	app.Description = "A Game Boy CPU core with tracing and a terminal monitor"
	app.Usage = "jeebie <command> [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log-level",
			Usage: "One of debug, info, warn, error",
			Value: "info",
		},
	}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "Run a ROM headless",
			Flags: append([]cli.Flag{
				cli.Uint64Flag{
					Name:  "steps",
					Usage: "Stop after this many instructions (0 = until an invalid opcode)",
				},
				cli.StringFlag{
					Name:  "trace",
					Usage: "Write one line of CPU state per instruction to this file",
				},
				cli.BoolFlag{
					Name:  "digest",
					Usage: "Print an xxhash digest of the execution trace when done",
				},
				cli.BoolFlag{
					Name:  "realtime",
					Usage: "Throttle execution to the DMG clock rate",
				},
				cli.BoolFlag{
					Name:  "serial",
					Usage: "Copy serial port output to stdout",
				},
				cli.StringFlag{
					Name:  "profile",
					Usage: "Write a cpu or mem profile to the current directory",
				},
			}, romFlags...),
			Action: runROM,
		},
		{
			Name:   "monitor",
			Usage:  "Step through a ROM in an interactive terminal view",
			Flags:  romFlags,
			Action: runMonitor,
		},
		{
			Name:  "diff",
			Usage: "Run a ROM and compare its trace against a reference log",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "expected",
					Usage: "Reference trace, one line per instruction",
				},
				cli.Uint64Flag{
					Name:  "steps",
					Usage: "Stop after this many instructions (0 = as many as the reference has)",
				},
			}, romFlags...),
			Action: runDiff,
		},
		{
			Name:  "disasm",
			Usage: "Disassemble ROM contents",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "pc",
					Usage: "Start address, decimal or 0x prefixed hex",
					Value: "0x0100",
				},
				cli.IntFlag{
					Name:  "count",
					Usage: "Number of instructions",
					Value: 32,
				},
			}, romFlags...),
			Action: runDisasm,
		},
		{
			Name:   "info",
			Usage:  "Print the cartridge header",
			Flags:  romFlags,
			Action: runInfo,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func setupLogging(c *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.GlobalString("log-level"))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.GlobalString("log-level"), err)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	return nil
}

func romPath(c *cli.Context) (string, error) {
	path := c.String("rom")
	if path == "" {
		if c.NArg() > 0 {
			path = c.Args().Get(0)
		} else {
			cli.ShowCommandHelp(c, c.Command.Name)
			return "", errors.New("no ROM path provided")
		}
	}
	return path, nil
}

// emulatorOptions collects the options shared by every command that runs code.
func emulatorOptions(c *cli.Context) ([]jeebie.Option, error) {
	var opts []jeebie.Option
	if path := c.String("boot-rom"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, jeebie.WithBootROM(data))
	}
	return opts, nil
}

func newEmulator(c *cli.Context, extra ...jeebie.Option) (*jeebie.Emulator, error) {
	path, err := romPath(c)
	if err != nil {
		return nil, err
	}
	opts, err := emulatorOptions(c)
	if err != nil {
		return nil, err
	}
	return jeebie.NewWithFile(path, append(opts, extra...)...)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runROM(c *cli.Context) error {
	switch c.String("profile") {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", c.String("profile"))
	}

	var opts []jeebie.Option
	if path := c.String("trace"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts = append(opts, jeebie.WithTrace(f))
	}

	var digest *trace.Digest
	if c.Bool("digest") {
		digest = trace.NewDigest()
		opts = append(opts, jeebie.WithDigest(digest))
	}
	if c.Bool("realtime") {
		opts = append(opts, jeebie.WithThrottle(timing.NewRealtime()))
	}
	if c.Bool("serial") {
		opts = append(opts, jeebie.WithSerialOutput(os.Stdout))
	}

	emu, err := newEmulator(c, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	stats, err := emu.Run(ctx, c.Uint64("steps"))
	if closeErr := emu.Close(); closeErr != nil {
		return closeErr
	}

	logStats := []any{"steps", stats.Steps, "cycles", stats.Cycles, "interrupts", stats.Interrupts}
	switch {
	case errors.Is(err, cpu.ErrInvalidOpcode):
		slog.Info("Execution halted", append(logStats, "reason", err)...)
	case errors.Is(err, context.Canceled):
		slog.Info("Execution interrupted", logStats...)
	case err != nil:
		return err
	default:
		slog.Info("Execution completed", logStats...)
	}

	if digest != nil {
		fmt.Printf("%s %d\n", digest, digest.Lines())
	}
	return nil
}

func runMonitor(c *cli.Context) error {
	emu, err := newEmulator(c)
	if err != nil {
		return err
	}
	defer emu.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	defer screen.Fini()

	ctx, stop := signalContext()
	defer stop()

	err = monitor.New(screen, emu).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// countLines returns the number of lines in the file at path.
func countLines(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var n uint64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
	}
	return n, scanner.Err()
}

func runDiff(c *cli.Context) error {
	expectedPath := c.String("expected")
	if expectedPath == "" {
		return errors.New("diff requires --expected")
	}

	steps := c.Uint64("steps")
	if steps == 0 {
		n, err := countLines(expectedPath)
		if err != nil {
			return err
		}
		steps = n
	}

	pr, pw := io.Pipe()
	emu, err := newEmulator(c, jeebie.WithTrace(pw))
	if err != nil {
		return err
	}

	go func() {
		_, runErr := emu.Run(context.Background(), steps)
		if errors.Is(runErr, cpu.ErrInvalidOpcode) {
			runErr = nil
		}
		if closeErr := emu.Close(); runErr == nil {
			runErr = closeErr
		}
		pw.CloseWithError(runErr)
	}()

	expected, err := os.Open(expectedPath)
	if err != nil {
		return err
	}
	defer expected.Close()

	mismatch, err := trace.Compare(expected, pr)
	// unblock the emulator if we stopped reading early
	pr.Close()
	if err != nil {
		return err
	}
	if mismatch != nil {
		fmt.Println(mismatch)
		return fmt.Errorf("traces diverge at line %d", mismatch.Line)
	}

	fmt.Printf("traces match (%d lines)\n", steps)
	return nil
}

func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "$"), 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(v), nil
}

func runDisasm(c *cli.Context) error {
	path, err := romPath(c)
	if err != nil {
		return err
	}
	cart, err := memory.LoadCartridge(path)
	if err != nil {
		return err
	}
	pc, err := parseAddress(c.String("pc"))
	if err != nil {
		return err
	}

	mem := memory.NewWithCartridge(cart)
	mem.UnlockBootROM()
	for _, line := range disasm.Range(mem, pc, c.Int("count")) {
		fmt.Println(disasm.Format(line, line.Address == pc))
	}
	return nil
}

func runInfo(c *cli.Context) error {
	path, err := romPath(c)
	if err != nil {
		return err
	}
	cart, err := memory.LoadCartridge(path)
	if err != nil {
		return err
	}

	checksum := "OK"
	if !cart.HeaderChecksumValid() {
		checksum = "MISMATCH"
	}

	fmt.Printf("Title:     %s\n", cart.Title())
	fmt.Printf("Type:      %s\n", cart.TypeName())
	fmt.Printf("Version:   %d\n", cart.Version())
	fmt.Printf("CGB:       %t\n", cart.CGB())
	fmt.Printf("ROM size:  %d (%d loaded)\n", cart.ROMSize(), cart.Size())
	fmt.Printf("RAM size:  %d\n", cart.RAMSize())
	fmt.Printf("Checksum:  0x%02X %s\n", cart.HeaderChecksum(), checksum)
	fmt.Printf("Global:    0x%04X\n", cart.GlobalChecksum())

	if bootPath := c.String("boot-rom"); bootPath != "" {
		data, err := os.ReadFile(bootPath)
		if err != nil {
			return err
		}
		fmt.Printf("Boot ROM:  %s (%s)\n", memory.BootROMModel(data), memory.BootROMChecksum(data))
	}
	return nil
}
