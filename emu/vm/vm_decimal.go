/*
 * chsim - Signed decimal helpers.
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

// Signed values live in [-100, 100). A negative value stands for a ten's
// complement accumulator with its sign flag up: M99 is -1, M00 is -100.

// DropSign returns the two digits of a signed value.
func DropSign(a int) int {
	if a >= 0 {
		return a
	}
	return a + 100 // e.g. M99 (-1) -> P99
}

// copySign returns the digits of a with the sign of f.
func copySign(f, a int) int {
	digits := DropSign(a)
	if f >= 0 {
		return digits
	}
	return digits - 100 // e.g. P99 -> -1
}

// swapDropSign exchanges a and x. The sign of a does not fit in x and is
// dropped.
func swapDropSign(a, x *int) {
	tmp := DropSign(*a)
	*a = *x
	*x = tmp
}
