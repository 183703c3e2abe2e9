/*
 * chsim - Execution profile dump.
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

package machine

import (
	"fmt"
	"io"

	"github.com/rcornwell/chsim/emu/disassemble"
)

// WriteProfile lists every executed instruction with its hit count, one
// `pc/slot  mnemonic  ; count` line each. Profile counts are recorded
// before fetch, so mid row slots are attributed back to the row that was
// latched at pc-1.
func (m *Machine) WriteProfile(w io.Writer) {
	for pc := 100; pc < 400; pc++ {
		for i := 0; i <= 6; i++ {
			count := m.VM.Profile[pc][i]
			if count == 0 {
				continue
			}
			scratch := *m.VM
			if i != 6 {
				// Re-latch the row this slot executed from.
				scratch.PC = pc - 1
				scratch.IRIndex = 6
				scratch.ConsumeIR()
			}
			scratch.PC = pc
			scratch.IRIndex = i
			dis, skip := disassemble.Disassemble(scratch)
			if skip {
				continue
			}
			adjustedPC, adjustedIndex := pc, 0
			if i != 6 {
				adjustedPC, adjustedIndex = pc-1, i-1
			}
			fmt.Fprintf(w, "%03d/%d  %-15s  ; %d\n", adjustedPC, adjustedIndex, dis, count)
		}
	}
}
