/*
 * chsim - Host simulator checkpoint state.
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

// Package eniac holds the host simulator's view of machine state at a
// checkpoint: twenty ten digit accumulators in sign-and-digits ASCII form
// and three 104 row function tables of single digits. The host alternates
// detailed simulation with the VM, importing and exporting this snapshot at
// row boundaries.
package eniac

// State is one checkpoint snapshot. Accumulators are ASCII [PM][0-9]{10}.
type State struct {
	Cycles uint64
	// ErrorCode holds the VM error word if not zero.
	ErrorCode int
	// Rollback is set when the VM encounters I/O, break or halt, and
	// indicates the host should skip this snapshot and take over.
	Rollback bool
	Acc      [20][11]byte
	FT       [3][104][14]int
}

// Word returns the two digit value at digit offset n of an accumulator.
func Word(acc *[11]byte, n int) int {
	return 10*int(acc[n]-'0') + int(acc[n+1]-'0')
}

// PackAcc formats five words into an accumulator. Only the first word may
// be negative; its sign selects the P or M indicator.
func PackAcc(a, b, c, d, e int, acc *[11]byte) {
	if a < 0 {
		acc[0] = 'M'
		a += 100
	} else {
		acc[0] = 'P'
	}
	for i, w := range [5]int{a, b, c, d, e} {
		acc[1+2*i] = byte('0' + (w/10)%10)
		acc[2+2*i] = byte('0' + w%10)
	}
}

// UnpackAcc extracts five words from an accumulator. An M indicator makes
// the first word negative.
func UnpackAcc(acc *[11]byte) (a, b, c, d, e int) {
	a = Word(acc, 1)
	if acc[0] == 'M' {
		a -= 100
	}
	b = Word(acc, 3)
	c = Word(acc, 5)
	d = Word(acc, 7)
	e = Word(acc, 9)
	return a, b, c, d, e
}
