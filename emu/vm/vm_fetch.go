/*
 * chsim - Instruction fetch and operand decoding.
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

// ConsumeIR returns the next slot of the instruction register, latching a
// fresh function table row when the pipeline is empty. Rows at 300 and up
// reserve slot 0 for the row sign, so fetches there begin at slot 1.
// Falling through into 200 or 300 is a latched error; those addresses may
// only be entered by an explicit jump.
func (vm *VM) ConsumeIR() int {
	if vm.IRIndex == 6 {
		if vm.PC >= 300 {
			vm.IRIndex = 1
		} else {
			vm.IRIndex = 0
		}
		vm.IR = vm.FunctionTable[vm.PC]
		vm.PC++
		if vm.PC == 200 || vm.PC == 300 {
			vm.Error |= ErrPCWrapped
			vm.Status |= HALT
			return 95 // halt
		}
	}
	op := vm.IR[vm.IRIndex]
	vm.IRIndex++
	return op
}

// ConsumeOperand returns the next slot as inline data. The operand is
// pre-incremented with carry across the remaining slots, but the trailing
// run of 99 opcodes at the end of the row is a write fence: carries stop
// below it, and an operand slot lying inside it is returned untouched so
// the sled stays intact.
func (vm *VM) ConsumeOperand() int {
	if vm.IRIndex == 6 {
		vm.Error |= ErrOperandMisaligned
		vm.Status |= HALT
		return 95 // halt
	}
	sledStart := 6
	for sledStart > 0 && vm.IR[sledStart-1] == 99 {
		sledStart--
	}
	if vm.IRIndex < sledStart {
		vm.IR[vm.IRIndex]++
		for i := vm.IRIndex; i < 6; i++ {
			if vm.IR[i] == 100 {
				vm.IR[i] = 0
				// Do not carry into sled
				if i < sledStart-1 {
					vm.IR[i+1]++
				}
			}
		}
	}
	op := vm.IR[vm.IRIndex]
	vm.IRIndex++
	return op
}

// ConsumeNearAddress reads a one slot jump target within the current bank.
func (vm *VM) ConsumeNearAddress() int {
	target := vm.ConsumeOperand()
	return 100*(vm.PC/100) + target
}

// ConsumeFarAddress reads a jump target plus a trailing bank digit. The
// bank digit must lie in the same row as the target; reading it out of the
// next row would split the instruction across a checkpoint boundary, so
// that case latches ErrOperandMisaligned instead.
func (vm *VM) ConsumeFarAddress() int {
	target := vm.ConsumeOperand()
	if vm.IRIndex == 6 {
		vm.Error |= ErrOperandMisaligned
		vm.Status |= HALT
		return vm.PC
	}
	switch vm.ConsumeIR() {
	case 9:
		return 100 + target
	case 90:
		return 200 + target
	case 99:
		return 300 + target
	}
	vm.Error |= ErrIllegalBank
	vm.Status |= HALT
	return vm.PC
}
