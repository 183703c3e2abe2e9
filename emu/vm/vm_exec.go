/*
 * chsim - Instruction execution.
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

// copyMemToLS loads memory accumulator acc into the load store scratch.
// The sign of word 0 travels with F.
func (vm *VM) copyMemToLS(acc int) {
	for w := 0; w < 5; w++ {
		vm.SetWord(5+w, vm.Mem[acc][w])
	}
}

// copyLSToMem stores the load store scratch into memory accumulator acc.
func (vm *VM) copyLSToMem(acc int) {
	for w := 0; w < 5; w++ {
		vm.Mem[acc][w] = vm.Word(5 + w)
	}
}

// updateBank mirrors the active function table bank into memory. The signs
// of accumulators 12, 13 and 14 track banks 1, 2 and 3; the digits keep
// their value.
func (vm *VM) updateBank() {
	bank := (vm.PC / 100) % 10
	for i, b := range [3]int{1, 2, 3} {
		sign := -1
		if bank == b {
			sign = 1
		}
		vm.Mem[12+i][0] = copySign(sign, vm.Mem[12+i][0])
	}
}

// StepInstruction executes a single instruction, charging its fetch and
// execute cycle costs and range checking the machine afterwards. A halted
// VM does not advance.
func (vm *VM) StepInstruction() {
	if vm.Status&HALT != 0 {
		return
	}
	vm.Profile[vm.PC][vm.IRIndex]++
	fetchCost := 6
	if vm.IRIndex == 6 && vm.PC >= 300 {
		fetchCost = 13
	}
	opcode := vm.ConsumeIR()
	if opcode == 99 {
		fetchCost = 0
	}
	vm.Cycles += uint64(fetchCost)
	switch opcode {
	case 0: // clrall
		vm.A = 0
		vm.B = 0
		vm.C = 0
		vm.D = 0
		vm.E = 0
		vm.Cycles += 4
	case 1: // swap A, B
		swapDropSign(&vm.A, &vm.B)
		vm.Cycles += 4
	case 2: // swap A, C
		swapDropSign(&vm.A, &vm.C)
		vm.Cycles += 4
	case 3: // swap A, D
		swapDropSign(&vm.A, &vm.D)
		vm.Cycles += 4
	case 4: // swap A, E
		swapDropSign(&vm.A, &vm.E)
		vm.Cycles += 4
	case 10: // loadacc A
		if vm.A < 0 || vm.A >= 15 {
			vm.Error |= ErrIllegalAcc
			vm.Status |= HALT
			break
		}
		vm.copyMemToLS(vm.A)
		vm.Cycles += 11
	case 11: // storeacc A
		if vm.A < 0 || vm.A >= 15 {
			vm.Error |= ErrIllegalAcc
			vm.Status |= HALT
			break
		}
		vm.F = copySign(vm.Mem[vm.A][0], vm.F)
		vm.copyLSToMem(vm.A)
		vm.Cycles += 13
	case 12: // swapall
		for i := 0; i < 5; i++ {
			rf, ls := vm.Word(i), vm.Word(5+i)
			vm.SetWord(i, ls)
			vm.SetWord(5+i, rf)
		}
		vm.Cycles += 5
	case 14: // ftl A
		offset := DropSign(vm.A)
		if offset < 8 || offset > 99 {
			vm.Error |= ErrIllegalFTL
			vm.Status |= HALT
			break
		}
		vm.A = vm.FunctionTable[300+offset][0]
		vm.Cycles += 7
	case 20, 21, 22, 23: // mov B, A / mov C, A / mov D, A / mov E, A
		vm.A = vm.Word(1 + opcode - 20)
		vm.Cycles += 9
	case 30, 31, 32, 33: // mov G, A / mov H, A / mov I, A / mov J, A
		vm.A = vm.Word(6 + opcode - 30)
		vm.Cycles += 9
	case 34: // mov F, A
		vm.A = DropSign(vm.F)
		vm.Cycles += 9
	case 40: // mov imm, A
		vm.A = vm.ConsumeOperand()
		vm.Cycles += 4
	case 41: // mov [B], A
		if vm.B < 0 || vm.B >= 75 {
			vm.Error |= ErrIllegalAddress
			vm.Status |= HALT
			break
		}
		acc, word := vm.B/5, vm.B%5
		vm.copyMemToLS(acc)
		if word == 0 {
			vm.A = DropSign(vm.F)
		} else {
			vm.A = vm.Word(5 + word)
		}
		vm.Cycles += 28
	case 42: // mov A, [B]
		if vm.B < 0 || vm.B >= 75 {
			vm.Error |= ErrIllegalAddress
			vm.Status |= HALT
			break
		}
		acc, word := vm.B/5, vm.B%5
		vm.copyMemToLS(acc)
		if word == 0 {
			vm.F = copySign(vm.F, vm.A)
		} else {
			vm.SetWord(5+word, DropSign(vm.A))
		}
		vm.copyLSToMem(acc)
		vm.Cycles += 37
	case 43: // lodig A
		if vm.A >= 0 {
			vm.A %= 10
		} else {
			// lodig M99 = M09 (-91)
			vm.A = (100+vm.A)%10 - 100
		}
		vm.Cycles += 5
	case 44: // swapdig A
		digits := DropSign(vm.A)
		swapped := 10*(digits%10) + digits/10
		if vm.A >= 0 {
			vm.A = swapped
		} else {
			// swapdig M98 = M89
			vm.A = swapped - 100
		}
		vm.Cycles += 5
	case 52: // inc A
		vm.A++
		if vm.A == 100 {
			vm.A = -100
		}
		vm.Cycles++
	case 53: // dec A
		vm.A--
		if vm.A == -101 {
			vm.A = 99
		}
		vm.Cycles++
	case 54: // flipn
		if vm.A < 0 {
			vm.A += 100
		} else {
			vm.A -= 100
		}
		vm.Cycles += 2
	case 70: // add D,A
		vm.A += vm.D
		if vm.A >= 100 {
			vm.A -= 200
		}
		vm.Cycles += 5
	case 71: // add imm,A
		vm.A += vm.ConsumeOperand()
		if vm.A >= 100 {
			vm.A -= 200
		}
		vm.Cycles += 2
	case 72: // sub D,A
		vm.A -= vm.D
		if vm.A >= 100 {
			vm.A -= 200
		}
		if vm.A < -100 {
			vm.A += 200
		}
		vm.Cycles += 5
	case 73: // jmp
		vm.PC = vm.ConsumeNearAddress()
		vm.IRIndex = 6
		vm.Cycles += 2
	case 74: // jmp far
		vm.PC = vm.ConsumeFarAddress()
		vm.updateBank()
		vm.IRIndex = 6
		vm.Cycles += 6
	case 80: // jn
		takenPC := vm.ConsumeNearAddress()
		if vm.A < 0 {
			vm.PC = takenPC
			vm.IRIndex = 6
		}
		vm.Cycles += 6
	case 81: // jz
		takenPC := vm.ConsumeNearAddress()
		// M00 is zero with its sign flag up.
		if vm.A == 0 || vm.A == -100 {
			vm.PC = takenPC
			vm.IRIndex = 6
		}
		vm.Cycles += 10
	case 82: // jil
		takenPC := vm.ConsumeNearAddress()
		digits := DropSign(vm.A)
		d1 := digits % 10
		d2 := (digits / 10) % 10
		if d1 == 0 || d1 == 9 || d2 == 0 || d2 == 9 {
			vm.PC = takenPC
			vm.IRIndex = 6
		}
		vm.Cycles += 10
	case 84: // jsr
		// Single return slot: a jsr before the matching ret clobbers it.
		vm.OldPC = vm.PC
		vm.PC = vm.ConsumeFarAddress()
		vm.updateBank()
		vm.IRIndex = 6
		vm.Cycles += 6
	case 85: // ret
		vm.PC = vm.OldPC
		vm.updateBank()
		vm.OldPC = 0
		vm.IRIndex = 6
		vm.Cycles += 6
	case 90: // clr A
		vm.A = 0
		vm.Cycles += 2
	case 91: // read
		vm.Status |= IOREAD
	case 92: // print
		vm.Status |= IOPRINT
	case 94: // brk
		vm.Status |= BREAK
	case 95: // halt
		vm.Status |= HALT
	case 99: // sled
	default: // illegal opcode
		vm.Error |= ErrIllegalOpcode
		vm.Status |= HALT
	}
	vm.checkBounds()
}
