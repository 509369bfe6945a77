// Package monitor is an interactive terminal view of a running CPU: registers,
// disassembly around PC and recent log output, with single stepping.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-jeebie-cpu/jeebie/cpu"
	"github.com/valerio/go-jeebie-cpu/jeebie/disasm"
	"github.com/valerio/go-jeebie-cpu/jeebie/memory"
	"github.com/valerio/go-jeebie-cpu/jeebie/timing"
)

const (
	frameTime = time.Second / 60

	registerWidth  = 28
	registerHeight = 11
	disasmBefore   = 4
	disasmAfter    = 6
	minTermWidth   = 60
	minTermHeight  = 20
	logBufferSize  = 200
)

// Machine is what the monitor drives.
type Machine interface {
	Step() (int, error)
	CPU() *cpu.CPU
	Memory() *memory.MMU
}

type state int

const (
	statePaused state = iota
	stateRunning
	stateStopped // the machine returned an error, stepping is disabled
)

// Monitor renders a Machine to a tcell screen and steps it on key presses.
type Monitor struct {
	screen  tcell.Screen
	machine Machine

	logs     *LogBuffer
	logLevel slog.Level

	state state
	quit  bool
	err   error
}

// New creates a monitor over an initialized screen. It installs a slog
// handler that feeds the log panel as the default logger.
func New(screen tcell.Screen, machine Machine) *Monitor {
	m := &Monitor{
		screen:   screen,
		machine:  machine,
		logs:     NewLogBuffer(logBufferSize),
		logLevel: slog.LevelInfo,
	}
	slog.SetDefault(slog.New(NewLogHandler(m.logs, slog.LevelDebug)))

	m.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	m.screen.Clear()
	slog.Info("Monitor started", "pc", fmt.Sprintf("0x%04X", machine.CPU().PC()))
	return m
}

// Run handles input and redraws until the user quits or ctx is done. While
// running, a frame's worth of cycles is executed per redraw.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.pollEvents()
		if m.quit {
			return nil
		}
		if m.state == stateRunning {
			m.runFrame()
		}
		m.Draw()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Err returns the error that stopped the machine, if any.
func (m *Monitor) Err() error {
	return m.err
}

func (m *Monitor) pollEvents() {
	for m.screen.HasPendingEvent() {
		switch ev := m.screen.PollEvent().(type) {
		case *tcell.EventKey:
			m.handleKey(ev)
		case *tcell.EventResize:
			m.screen.Sync()
		}
	}
}

func (m *Monitor) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		m.quit = true
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case 'q':
		m.quit = true
	case 'n', ' ':
		if m.state == statePaused {
			m.step()
		}
	case 'r':
		switch m.state {
		case statePaused:
			m.state = stateRunning
			slog.Info("Running")
		case stateRunning:
			m.state = statePaused
			slog.Info("Paused", "pc", fmt.Sprintf("0x%04X", m.machine.CPU().PC()))
		}
	case '+', '=':
		m.changeLogLevel(1)
	case '-', '_':
		m.changeLogLevel(-1)
	}
}

// changeLogLevel shows more (1) or fewer (-1) log levels in the panel.
func (m *Monitor) changeLogLevel(direction int) {
	levels := []slog.Level{slog.LevelError, slog.LevelWarn, slog.LevelInfo, slog.LevelDebug}
	current := 0
	for i, l := range levels {
		if l == m.logLevel {
			current = i
		}
	}
	next := current + direction
	if next < 0 || next >= len(levels) {
		return
	}
	slog.Info("Log filter changed", "from", m.logLevel, "to", levels[next])
	m.logLevel = levels[next]
}

func (m *Monitor) step() int {
	cycles, err := m.machine.Step()
	if err != nil {
		m.err = err
		m.state = stateStopped
		if !errors.Is(err, cpu.ErrInvalidOpcode) {
			slog.Error("Step failed", "error", err)
		}
		return 0
	}
	return cycles
}

func (m *Monitor) runFrame() {
	for cycles := 0; cycles < timing.CyclesPerFrame && m.state == stateRunning; {
		cycles += m.step()
	}
}

// Draw renders the current state and shows it.
func (m *Monitor) Draw() {
	m.screen.Clear()
	defer m.screen.Show()

	termWidth, termHeight := m.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		m.drawText(0, termHeight/2, termWidth, tcell.StyleDefault.Foreground(tcell.ColorRed), msg)
		return
	}

	m.drawBorders(termWidth, termHeight)
	m.drawRegisters(1, 1)
	m.drawDisassembly(registerWidth+2, 1, termWidth-registerWidth-3)
	m.drawLogs(1, registerHeight+2, termWidth-2, termHeight-registerHeight-4)

	help := "n/space: step  r: run/pause  +/-: log level  q: quit"
	m.drawText(1, termHeight-1, termWidth-2, tcell.StyleDefault.Foreground(tcell.ColorWhite), help)
}

func (m *Monitor) drawBorders(termWidth, termHeight int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y <= registerHeight; y++ {
		m.screen.SetContent(registerWidth+1, y, '│', nil, borderStyle)
	}
	for x := 0; x < termWidth; x++ {
		m.screen.SetContent(x, registerHeight+1, '─', nil, borderStyle)
		m.screen.SetContent(x, termHeight-2, '─', nil, borderStyle)
	}
	m.screen.SetContent(registerWidth+1, registerHeight+1, '┴', nil, borderStyle)

	m.drawText(1, 0, registerWidth, titleStyle, " CPU ")
	m.drawText(registerWidth+3, 0, termWidth, titleStyle, " Disassembly ")
	m.drawText(1, registerHeight+1, termWidth, titleStyle, " Logs ")
}

func (m *Monitor) status() string {
	c := m.machine.CPU()
	switch {
	case m.state == stateStopped:
		return "STOPPED"
	case c.Stopped():
		return "STOP"
	case c.Halted():
		return "HALT"
	case m.state == stateRunning:
		return "RUNNING"
	default:
		return "PAUSED"
	}
}

func (m *Monitor) drawRegisters(x, y int) {
	c := m.machine.CPU()
	mem := m.machine.Memory()

	ime := "OFF"
	if c.IME() {
		ime = "ON"
	}

	lines := []string{
		fmt.Sprintf("Status: %s", m.status()),
		fmt.Sprintf("A: 0x%02X  F: 0x%02X", c.A(), c.F()),
		fmt.Sprintf("B: 0x%02X  C: 0x%02X", c.B(), c.C()),
		fmt.Sprintf("D: 0x%02X  E: 0x%02X", c.D(), c.E()),
		fmt.Sprintf("H: 0x%02X  L: 0x%02X", c.H(), c.L()),
		fmt.Sprintf("SP: 0x%04X  PC: 0x%04X", c.SP(), c.PC()),
		fmt.Sprintf("Flags: %s", c.FlagString()),
		fmt.Sprintf("IME: %s  IF&IE: 0x%02X", ime, mem.PendingInterrupts()),
		fmt.Sprintf("Cycles: %d", c.Cycles()),
		fmt.Sprintf("Boot ROM: %s", map[bool]string{true: "unlocked", false: "locked"}[mem.IsBootROMUnlocked()]),
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	for i, line := range lines {
		m.drawText(x, y+i, registerWidth, style, line)
	}
	if m.err != nil {
		m.drawText(x, y+len(lines), registerWidth, tcell.StyleDefault.Foreground(tcell.ColorRed), m.err.Error())
	}
}

func (m *Monitor) drawDisassembly(x, y, width int) {
	pc := m.machine.CPU().PC()
	lines := disasm.Around(m.machine.Memory(), pc, disasmBefore, disasmAfter)

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	for i, line := range lines {
		if i >= registerHeight {
			break
		}
		useStyle := style
		if line.Address == pc {
			useStyle = currentStyle
		}
		m.drawText(x, y+i, width, useStyle, disasm.Format(line, line.Address == pc))
	}

}

func (m *Monitor) drawLogs(x, y, width, height int) {
	if height <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range m.logs.Recent(height, m.logLevel) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}
		m.drawText(x, y+i, width, style, entry.String())
	}
}

// drawText writes text from (x, y), truncating it with "..." past width.
func (m *Monitor) drawText(x, y, width int, style tcell.Style, text string) {
	runes := []rune(text)
	if len(runes) > width {
		if width > 3 {
			runes = append(runes[:width-3], '.', '.', '.')
		} else if width > 0 {
			runes = runes[:width]
		} else {
			return
		}
	}
	for i, r := range runes {
		m.screen.SetContent(x+i, y, r, nil, style)
	}
}
