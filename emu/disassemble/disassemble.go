/*
 * chsim - Instruction disassembler.
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

package disassemble

import (
	"fmt"

	"github.com/rcornwell/chsim/emu/vm"
)

const (
	tyPlain = 1 + iota // No operand.
	tyImm              // Inline immediate.
	tyNear             // Jump target in the current bank.
	tyFar              // Jump target plus bank digit.
	tySled             // End of row padding, skipped while stepping.
)

type opcode struct {
	opName string // Mnemonic.
	opType int    // Operand form.
}

var opMap = map[int]opcode{
	0:  {"clrall", tyPlain},
	1:  {"swap A,B", tyPlain},
	2:  {"swap A,C", tyPlain},
	3:  {"swap A,D", tyPlain},
	4:  {"swap A,E", tyPlain},
	10: {"loadacc A", tyPlain},
	11: {"storeacc A", tyPlain},
	12: {"swapall", tyPlain},
	14: {"ftl A", tyPlain},
	20: {"mov B,A", tyPlain},
	21: {"mov C,A", tyPlain},
	22: {"mov D,A", tyPlain},
	23: {"mov E,A", tyPlain},
	30: {"mov G,A", tyPlain},
	31: {"mov H,A", tyPlain},
	32: {"mov I,A", tyPlain},
	33: {"mov J,A", tyPlain},
	34: {"mov F,A", tyPlain},
	40: {"mov %d,A", tyImm},
	41: {"mov [B],A", tyPlain},
	42: {"mov A,[B]", tyPlain},
	43: {"lodig A", tyPlain},
	44: {"swapdig A", tyPlain},
	52: {"inc A", tyPlain},
	53: {"dec A", tyPlain},
	54: {"flipn", tyPlain},
	70: {"add D,A", tyPlain},
	71: {"add %d,A", tyImm},
	72: {"sub D,A", tyPlain},
	73: {"jmp %d", tyNear},
	74: {"jmp %d", tyFar},
	80: {"jn %d", tyNear},
	81: {"jz %d", tyNear},
	82: {"jil %d", tyNear},
	84: {"jsr %d", tyFar},
	85: {"ret", tyPlain},
	90: {"clr A", tyPlain},
	91: {"read", tyPlain},
	92: {"print", tyPlain},
	94: {"brk", tyPlain},
	95: {"halt", tyPlain},
	99: {"sled", tySled},
}

// Disassemble returns the instruction at the machine's current fetch
// position, and whether it is padding that single stepping should skip.
// The machine is passed by value because operand decoding is destructive.
func Disassemble(m vm.VM) (string, bool) {
	op := m.ConsumeIR()
	def, ok := opMap[op]
	if !ok {
		return fmt.Sprintf("???  # invalid opcode %02d", op), false
	}
	switch def.opType {
	case tyImm:
		return fmt.Sprintf(def.opName, m.ConsumeOperand()), false
	case tyNear:
		return fmt.Sprintf(def.opName, m.ConsumeNearAddress()), false
	case tyFar:
		return fmt.Sprintf(def.opName, m.ConsumeFarAddress()), false
	case tySled:
		return def.opName, true
	}
	return def.opName, false
}
