/*
 * chsim - Run harness tying the VM to its card deck and printer.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package machine drives a VM outside the host simulator. It owns the card
// deck the read opcode consumes and the printer stream the print opcode
// emits to, and services the VM's I/O status bits between instructions.
// The VM itself never blocks: read and print are cooperative suspensions
// resolved here.
package machine

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/rcornwell/chsim/emu/vm"
)

// Machine couples a VM with its I/O streams.
type Machine struct {
	VM *vm.VM

	deck        io.Reader
	deckIsStdin bool
	printer     io.Writer
	interrupt   atomic.Bool
}

// New returns a machine around the given VM, printing to printer. The deck
// defaults to stdin until SetDeck is called.
func New(v *vm.VM, printer io.Writer) *Machine {
	return &Machine{
		VM:          v,
		deck:        os.Stdin,
		deckIsStdin: true,
		printer:     printer,
	}
}

// SetDeck selects the input stream the read opcode consumes from.
func (m *Machine) SetDeck(r io.Reader, isStdin bool) {
	m.deck = r
	m.deckIsStdin = isStdin
}

// Interrupt requests that a running loop stop after the current
// instruction. Safe to call from a signal handler goroutine.
func (m *Machine) Interrupt() {
	m.interrupt.Store(true)
}

// Step executes one instruction and services any I/O suspension it raised.
// Read failures halt the machine; errors latched by the VM are logged.
func (m *Machine) Step() {
	m.VM.StepInstruction()
	if m.VM.Error != 0 {
		slog.Error(fmt.Sprintf("vm error %#x at pc %03d", m.VM.Error, m.VM.PC))
		return
	}
	if m.VM.Status&vm.IOREAD != 0 {
		f, g, h, ok := m.readDeck()
		if !ok {
			slog.Error("invalid read data")
			m.VM.Status |= vm.HALT
			return
		}
		m.VM.F = f
		m.VM.G = g
		m.VM.H = 10*h + m.VM.H%10
		m.VM.Status &^= vm.IOREAD
	}
	if m.VM.Status&vm.IOPRINT != 0 {
		fmt.Fprintf(m.printer, "%02d%02d\n", vm.DropSign(m.VM.A), m.VM.B)
		m.VM.Status &^= vm.IOPRINT
	}
}

// readDeck consumes one five digit token ffggh from the deck: two digits
// for F, two for G, and the tens digit of H.
func (m *Machine) readDeck() (f, g, h int, ok bool) {
	if m.deckIsStdin {
		fmt.Fprint(os.Stderr, "?")
	}
	var token string
	if _, err := fmt.Fscan(m.deck, &token); err != nil {
		return 0, 0, 0, false
	}
	if len(token) != 5 {
		return 0, 0, 0, false
	}
	for _, ch := range token {
		if ch < '0' || ch > '9' {
			return 0, 0, 0, false
		}
	}
	f, _ = strconv.Atoi(token[0:2])
	g, _ = strconv.Atoi(token[2:4])
	h, _ = strconv.Atoi(token[4:5])
	return f, g, h, true
}

// Run steps until the VM raises break or halt, latches an error, or
// Interrupt is called.
func (m *Machine) Run() {
	m.interrupt.Store(false)
	for !m.interrupt.Load() && m.VM.Status == 0 {
		m.Step()
	}
}

// RunCycles runs the non-interactive test mode: step until the cycle budget
// is spent or the program breaks or halts.
func (m *Machine) RunCycles(limit uint64) {
	for m.VM.Cycles < limit && m.VM.Status&(vm.BREAK|vm.HALT) == 0 {
		m.Step()
	}
}

// Halted reports whether the program stopped itself, the test mode success
// condition.
func (m *Machine) Halted() bool {
	return m.VM.Status&vm.HALT != 0
}
