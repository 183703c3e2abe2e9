/*
 * chsim - Post instruction range checks.
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

// checkBounds range checks every register and memory word after an
// instruction retires. Any violation halts the VM.
func (vm *VM) checkBounds() {
	check := func(bit int, ok bool) {
		if !ok {
			vm.Error |= bit
		}
	}
	check(ErrABounds, vm.A >= -100 && vm.A < 100)
	check(ErrBBounds, vm.B >= 0 && vm.B < 100)
	check(ErrCBounds, vm.C >= 0 && vm.C < 100)
	check(ErrDBounds, vm.D >= 0 && vm.D < 100)
	check(ErrEBounds, vm.E >= 0 && vm.E < 100)
	check(ErrFBounds, vm.F >= -100 && vm.F < 100)
	check(ErrGBounds, vm.G >= 0 && vm.G < 100)
	check(ErrHBounds, vm.H >= 0 && vm.H < 100)
	check(ErrIBounds, vm.I >= 0 && vm.I < 100)
	check(ErrJBounds, vm.J >= 0 && vm.J < 100)
	check(ErrPCBounds, vm.PC >= 100 && vm.PC < 400)
	check(ErrRRBounds, vm.OldPC == 0 || (vm.OldPC >= 100 && vm.OldPC < 400))
	check(ErrIRBounds, vm.IRIndex >= 0 && vm.IRIndex <= 6)
mem:
	for i := range vm.Mem {
		for j, w := range vm.Mem[i] {
			// First word of each memory accumulator can be negative; this
			// is visible through loadacc but not word mov.
			low := 0
			if j == 0 {
				low = -100
			}
			if w < low || w >= 100 {
				vm.Error = ErrMemBounds | (5*i + j)
				break mem
			}
		}
	}
	if vm.Error != 0 {
		vm.Status |= HALT
	}
}
