/*
 * chsim - VM state and step drivers.
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

// Package vm implements a cycle counting simulator for the ISA v4 virtual
// machine layered on top of the ENIAC. The VM executes programs held in a
// read only decimal function table and exchanges checkpoint state with the
// host simulator through Import and Export. All registers and memory words
// are two digit decimal values; only A, F and the first word of each memory
// accumulator carry a sign.
package vm

// Status bits. HALT is sticky, the rest are transient and cleared at the
// start of each Step.
const (
	HALT    = 0x01
	BREAK   = 0x02
	IOREAD  = 0x04
	IOPRINT = 0x08
)

// Error bits. Errors latch: once set the VM halts and further steps are
// no-ops. ErrMemBounds carries the offending linear address in its low
// bits, so a memory fault replaces the error word instead of or-ing it.
const (
	ErrABounds = 1 << iota
	ErrBBounds
	ErrCBounds
	ErrDBounds
	ErrEBounds
	ErrFBounds
	ErrGBounds
	ErrHBounds
	ErrIBounds
	ErrJBounds
	ErrPCBounds
	ErrRRBounds
	ErrIRBounds
	ErrMemBounds
	ErrPCWrapped
	ErrOperandMisaligned
	ErrIllegalBank
	ErrIllegalAcc
	ErrIllegalFTL
	ErrIllegalAddress
	ErrIllegalOpcode
)

// VM holds the complete machine state. Field order preserves the layout the
// host sizes the structure by: counters, fetch state, register file, load
// store scratch, memory, function table, profile.
type VM struct {
	Cycles uint64
	Status int
	Error  int

	// Fetch state
	PC      int
	OldPC   int
	IR      [6]int
	IRIndex int
	// Register file
	A int
	B int
	C int
	D int
	E int
	// Load store scratch
	F int
	G int
	H int
	I int
	J int
	// Memory
	Mem [15][5]int

	// ROM, essentially
	FunctionTable [400][6]int
	FTInitialized bool

	// For profiling
	Profile [400][7]int
}

// New returns a freshly reset VM instance.
func New() *VM {
	vm := &VM{}
	vm.Reset()
	return vm
}

// Reset returns the VM to its power on state. The function table is marked
// uninitialized and will be ingested on the first Import.
func (vm *VM) Reset() {
	*vm = VM{PC: 100, IRIndex: 6}
}

// Word returns register i of the combined register file and load store
// scratch, indexed A=0 through J=9.
func (vm *VM) Word(i int) int {
	switch i {
	case 0:
		return vm.A
	case 1:
		return vm.B
	case 2:
		return vm.C
	case 3:
		return vm.D
	case 4:
		return vm.E
	case 5:
		return vm.F
	case 6:
		return vm.G
	case 7:
		return vm.H
	case 8:
		return vm.I
	case 9:
		return vm.J
	}
	return 0
}

// SetWord stores v into register i, indexed as for Word.
func (vm *VM) SetWord(i, v int) {
	switch i {
	case 0:
		vm.A = v
	case 1:
		vm.B = v
	case 2:
		vm.C = v
	case 3:
		vm.D = v
	case 4:
		vm.E = v
	case 5:
		vm.F = v
	case 6:
		vm.G = v
	case 7:
		vm.H = v
	case 8:
		vm.I = v
	case 9:
		vm.J = v
	}
}

// Step runs instructions until the next checkpoint: the fetch pipeline
// drains (a new function table row is needed), a status bit is raised, or
// an error latches. Published state is always at a row boundary.
func (vm *VM) Step() {
	if vm.Error != 0 {
		return
	}
	vm.Status &^= BREAK | IOREAD | IOPRINT
	for {
		vm.StepInstruction()
		// Step until a new FT row is needed, or until I/O or break/halt.
		if vm.IRIndex == 6 || vm.Status != 0 || vm.Error != 0 {
			return
		}
	}
}

// StepTo runs up to and including the given cycle count, never past it.
// Work is done on a scratch copy which is committed to the live state only
// at row boundaries, so a partial row that would exceed the budget is
// discarded. If the first instruction of a fresh row exceeds the budget no
// progress is reported at all; the host checkpoint discipline expects the
// published state to sit on the last committed row boundary.
func (vm *VM) StepTo(cycle uint64) {
	if vm.Error != 0 {
		return
	}
	vm.Status &^= BREAK | IOREAD | IOPRINT
	next := *vm
	for {
		next.StepInstruction()
		if next.Error != 0 {
			*vm = next
			return
		}
		if next.Cycles > cycle || next.Status != 0 {
			return
		}
		if next.IRIndex == 6 {
			*vm = next
		}
	}
}
