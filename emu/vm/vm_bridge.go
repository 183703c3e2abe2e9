/*
 * chsim - Checkpoint transfer between VM and host state.
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

package vm

import (
	"errors"

	"github.com/rcornwell/chsim/emu/eniac"
)

// ErrBadPCBank reports an import whose program counter bank digit pair is
// not one of 09, 90 or 99.
var ErrBadPCBank = errors.New("unrecognized program counter bank")

// Accumulator 0 encodes the return and current program counters as
// 00 RRbank RRpc PCbank PCpc, with bank digit pairs 09, 90 and 99 standing
// for banks 1, 2 and 3.

// Import populates the VM from a host checkpoint. Transient status bits are
// dropped; HALT and the error word stay. The function table is ingested on
// the first import only and treated as ROM afterwards.
func (vm *VM) Import(e *eniac.State) error {
	vm.Cycles = e.Cycles
	vm.Status &^= BREAK | IOREAD | IOPRINT

	oldPC := eniac.Word(&e.Acc[0], 5)
	switch eniac.Word(&e.Acc[0], 3) {
	case 9:
		vm.OldPC = 100 + oldPC
	case 90:
		vm.OldPC = 200 + oldPC
	case 99:
		vm.OldPC = 300 + oldPC
	default:
		// old_pc may be 0 initially
		vm.OldPC = 0
	}
	pc := eniac.Word(&e.Acc[0], 9)
	switch eniac.Word(&e.Acc[0], 7) {
	case 9:
		vm.PC = 100 + pc
	case 90:
		vm.PC = 200 + pc
	case 99:
		vm.PC = 300 + pc
	default:
		return ErrBadPCBank
	}
	vm.IRIndex = 6

	vm.F, vm.G, vm.H, vm.I, vm.J = eniac.UnpackAcc(&e.Acc[3]) // LS
	vm.A, vm.B, vm.C, vm.D, vm.E = eniac.UnpackAcc(&e.Acc[12]) // RF
	slot := 4
	for i := range vm.Mem {
		if slot == 12 { // Skip over RF
			slot++
		}
		m0, m1, m2, m3, m4 := eniac.UnpackAcc(&e.Acc[slot])
		vm.Mem[i] = [5]int{m0, m1, m2, m3, m4}
		slot++
	}

	if !vm.FTInitialized {
		vm.ingestFunctionTables(e)
	}
	return nil
}

// ingestFunctionTables converts the host's per digit function tables into
// six word rows. Host rows 2..101 of table t map to VM rows
// (t+1)*100..(t+1)*100+99. Table 3 carries a per row sign digit which
// applies to word 0.
func (vm *VM) ingestFunctionTables(e *eniac.State) {
	for t := 0; t < 3; t++ {
		for r := 2; r < 102; r++ {
			offset := (t+1)*100 + (r - 2)
			row := &e.FT[t][r]
			for w := 0; w < 6; w++ {
				vm.FunctionTable[offset][w] = 10*row[2*w+1] + row[2*w+2]
			}
			if t == 2 && e.FT[2][r][13] != 0 {
				vm.FunctionTable[offset][0] -= 100
			}
		}
	}
	vm.FTInitialized = true
}

// Export publishes the VM into a host checkpoint. Rollback tells the host
// to drop the snapshot and resume detailed simulation. The function table
// is never exported.
func (vm *VM) Export(e *eniac.State) {
	e.Cycles = vm.Cycles
	e.ErrorCode = vm.Error
	e.Rollback = vm.Status != 0

	// PC = 00RRRRPPPP
	bank := (vm.PC / 100) % 10
	oldBank := (vm.OldPC / 100) % 10
	acc0 := &e.Acc[0]
	acc0[0] = 'P'
	acc0[1] = '0'
	acc0[2] = '0'
	acc0[3] = "0099"[oldBank]
	acc0[4] = "0909"[oldBank]
	acc0[5] = byte('0' + (vm.OldPC/10)%10)
	acc0[6] = byte('0' + vm.OldPC%10)
	acc0[7] = "0099"[bank]
	acc0[8] = "0909"[bank]
	acc0[9] = byte('0' + (vm.PC/10)%10)
	acc0[10] = byte('0' + vm.PC%10)

	eniac.PackAcc(vm.F, vm.G, vm.H, vm.I, vm.J, &e.Acc[3])  // LS
	eniac.PackAcc(vm.A, vm.B, vm.C, vm.D, vm.E, &e.Acc[12]) // RF
	slot := 4
	for i := range vm.Mem {
		if slot == 12 { // Skip over RF
			slot++
		}
		m := vm.Mem[i]
		eniac.PackAcc(m[0], m[1], m[2], m[3], m[4], &e.Acc[slot])
		slot++
	}
}
