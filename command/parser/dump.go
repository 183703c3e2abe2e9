/*
 * chsim - Console state dumps.
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

package parser

import (
	"fmt"

	"github.com/rcornwell/chsim/emu/vm"
)

// dumpRegs prints the register state with a marker over the current IR
// slot.
func dumpRegs(v *vm.VM) {
	fmt.Printf("PC  RR  A   B  C  D  E  F  G  H  I  J  %*s\n", 1+2*v.IRIndex, "v")
	sign := 'P'
	if v.A < 0 {
		sign = 'M'
	}
	fmt.Printf("%03d %03d %c%02d %02d %02d %02d %02d %02d %02d %02d %02d %02d %02d%02d%02d%02d%02d%02d...\n",
		v.PC, v.OldPC, sign,
		vm.DropSign(v.A), v.B, v.C, v.D, v.E,
		v.F, v.G, v.H, v.I, v.J,
		v.IR[0], v.IR[1], v.IR[2], v.IR[3], v.IR[4], v.IR[5])
}

// dumpCurrentInstruction prints a disassembled instruction with the stop
// state appended.
func dumpCurrentInstruction(v *vm.VM, dis string) {
	state := ""
	switch {
	case v.Status&vm.HALT != 0:
		state = " [halted]"
	case v.Status&vm.BREAK != 0:
		state = " [break]"
	}
	fmt.Printf("  %s%s\n", dis, state)
}

// dumpMemory prints memory two accumulators per line, addressed linearly.
func dumpMemory(v *vm.VM) {
	fmt.Println("   x0 x1 x2 x3 x4 x5 x6 x7 x8 x9")
	for i := 0; i < len(v.Mem); i += 2 {
		fmt.Printf("%dx %02d %02d %02d %02d %02d",
			i/2, v.Mem[i][0], v.Mem[i][1], v.Mem[i][2], v.Mem[i][3], v.Mem[i][4])
		if i+1 < len(v.Mem) {
			fmt.Printf(" %02d %02d %02d %02d %02d\n",
				v.Mem[i+1][0], v.Mem[i+1][1], v.Mem[i+1][2], v.Mem[i+1][3], v.Mem[i+1][4])
		} else {
			fmt.Println()
		}
	}
}

// dumpMemoryAccs prints memory one accumulator per line.
func dumpMemoryAccs(v *vm.VM) {
	fmt.Println("   A B C D E")
	for i := range v.Mem {
		fmt.Printf("%02d %02d%02d%02d%02d%02d\n",
			i, v.Mem[i][0], v.Mem[i][1], v.Mem[i][2], v.Mem[i][3], v.Mem[i][4])
	}
}
