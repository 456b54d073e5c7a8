// Package console provides an interactive front panel for the TC16,
// showing the register file, data memory, output port, and a disassembly of
// the neighborhood of the program counter. Keybindings step the machine one
// phase or one instruction at a time, run it to halt, or reset it.
package console

import (
	"fmt"

	"github.com/jroimartin/gocui"

	"github.com/sarchlab/tc16sim/insts"
	"github.com/sarchlab/tc16sim/timing/core"
)

// runBudget bounds a front-panel "run to halt" so a program with no HLT
// cannot wedge the UI.
const runBudget = 1_000_000

// Panel is the gocui front panel over a core.
type Panel struct {
	core    *core.Core
	program []uint16
	decoder *insts.Decoder

	status string
}

// NewPanel creates a front panel over c. program is the loaded instruction
// stream, used for the disassembly view.
func NewPanel(c *core.Core, program []uint16) *Panel {
	return &Panel{
		core:    c,
		program: program,
		decoder: insts.NewDecoder(),
		status:  "s: step  p: phase  r: run  x: reset  q: quit",
	}
}

// Run opens the front panel and blocks until the user quits.
func (p *Panel) Run() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return fmt.Errorf("failed to create front panel: %w", err)
	}
	defer g.Close()

	g.SetManagerFunc(p.layout)

	if err := p.bindKeys(g); err != nil {
		return err
	}

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return fmt.Errorf("front panel error: %w", err)
	}
	return nil
}

func (p *Panel) bindKeys(g *gocui.Gui) error {
	bindings := []struct {
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{'s', p.step},
		{'p', p.phase},
		{'r', p.run},
		{'x', p.reset},
		{'q', quit},
		{gocui.KeyCtrlC, quit},
	}

	for _, b := range bindings {
		if err := g.SetKeybinding("", b.key, gocui.ModNone, b.handler); err != nil {
			return fmt.Errorf("failed to bind key: %w", err)
		}
	}
	return nil
}

func (p *Panel) step(g *gocui.Gui, v *gocui.View) error {
	p.core.Tick()
	p.status = fmt.Sprintf("stepped, state %v", p.core.Sequencer.State())
	return p.redraw(g)
}

func (p *Panel) phase(g *gocui.Gui, v *gocui.View) error {
	p.core.Phase()
	p.status = fmt.Sprintf("phase, state %v", p.core.Sequencer.State())
	return p.redraw(g)
}

func (p *Panel) run(g *gocui.Gui, v *gocui.View) error {
	if err := p.core.Run(runBudget); err != nil {
		p.status = err.Error()
	} else {
		p.status = fmt.Sprintf("halted, output %d", p.core.Output())
	}
	return p.redraw(g)
}

func (p *Panel) reset(g *gocui.Gui, v *gocui.View) error {
	p.core.Reset()
	p.status = "reset"
	return p.redraw(g)
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

// gocui layout: disassembly on the left, registers/memory/status stacked on
// the right.
func (p *Panel) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	mid := maxX / 2

	if v, err := g.SetView("disasm", 0, 0, mid-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Program"
	}
	if v, err := g.SetView("registers", mid, 0, maxX-1, 11); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Registers"
	}
	if v, err := g.SetView("memory", mid, 12, maxX-1, maxY-4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Memory / Ports"
	}
	if v, err := g.SetView("status", mid, maxY-3, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}

	return p.redraw(g)
}

func (p *Panel) redraw(g *gocui.Gui) error {
	if err := p.drawDisasm(g); err != nil {
		return err
	}
	if err := p.drawRegisters(g); err != nil {
		return err
	}
	if err := p.drawMemory(g); err != nil {
		return err
	}
	return p.drawStatus(g)
}

func (p *Panel) drawDisasm(g *gocui.Gui) error {
	v, err := g.View("disasm")
	if err != nil {
		return err
	}
	v.Clear()

	pc := p.core.Sequencer.PC()
	for addr, word := range p.program {
		marker := "  "
		if addr == int(pc) {
			marker = "->"
		}
		inst := p.decoder.Decode(word)
		fmt.Fprintf(v, "%s %3d  %04x  %s\n", marker, addr, word, inst)
	}
	return nil
}

func (p *Panel) drawRegisters(g *gocui.Gui) error {
	v, err := g.View("registers")
	if err != nil {
		return err
	}
	v.Clear()

	regFile := p.core.RegFile()
	for i, val := range regFile.R {
		fmt.Fprintf(v, "R%d  %5d  0x%04x\n", i, val, val)
	}
	fmt.Fprintf(v, "PC  %5d\n", regFile.PC)
	fmt.Fprintf(v, "EQ  %v\n", regFile.FlagEQ)
	return nil
}

func (p *Panel) drawMemory(g *gocui.Gui) error {
	v, err := g.View("memory")
	if err != nil {
		return err
	}
	v.Clear()

	mem := p.core.Memory()
	for addr := 0; addr < mem.NumWords(); addr += 8 {
		fmt.Fprintf(v, "%3d:", addr)
		for i := addr; i < addr+8 && i < mem.NumWords(); i++ {
			fmt.Fprintf(v, " %5d", mem.Read(uint8(i)))
		}
		fmt.Fprintln(v)
	}
	fmt.Fprintf(v, "\nout[%d] %5d   in[%d] %5d\n",
		mem.OutputAddr(), mem.Output(),
		mem.InputAddr(), mem.Read(mem.InputAddr()))
	return nil
}

func (p *Panel) drawStatus(g *gocui.Gui) error {
	v, err := g.View("status")
	if err != nil {
		return err
	}
	v.Clear()

	stats := p.core.Stats()
	fmt.Fprintf(v, "%s | cycles %d, insts %d\n", p.status, stats.Cycles, stats.Instructions)
	return nil
}
