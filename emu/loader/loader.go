/*
 * chsim - Program file reader.
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

// Package loader reads ISA v4 ".e" program files into a VM function table.
// The format is line oriented: a fixed header, comment and blank lines, and
// switch-setting directives that deposit one decimal digit at a time into a
// function table row, plus sign directives for table 3 rows.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/rcornwell/chsim/emu/vm"
)

const header = "# isa=v4"

// ReadProgram loads the program file into the machine's function table.
func ReadProgram(filename string, machine *vm.VM) error {
	fp, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "could not open %s", filename)
	}
	defer fp.Close()
	return readProgram(fp, filename, machine)
}

func readProgram(r io.Reader, filename string, machine *vm.VM) error {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() || scanner.Text() != header {
		return errors.Errorf("%s: expecting %s", filename, header)
	}

	var ft3Signs [100]bool
	lineNumber := 1
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if line == "" || line[0] == '#' {
			continue
		}

		var row int
		var sign rune
		if n, _ := fmt.Sscanf(line, "s f3.RB%dS %c", &row, &sign); n == 2 {
			if row < 0 || row >= 100 {
				return errors.Errorf("%s:%d: expecting ft row 0-99 %d", filename, lineNumber, row)
			}
			ft3Signs[row] = sign == 'M'
			continue
		}

		var ft, index, digit int
		var bank rune
		n, _ := fmt.Sscanf(line, "s f%d.R%c%dL%d %d", &ft, &bank, &row, &index, &digit)
		if n != 5 {
			return errors.Errorf("%s:%d: unrecognized directive", filename, lineNumber)
		}
		if ft < 1 || ft > 3 {
			return errors.Errorf("%s:%d: expecting ft 1-3 %d", filename, lineNumber, ft)
		}
		if bank != 'A' && bank != 'B' {
			return errors.Errorf("%s:%d: expecting ft bank A or B %c", filename, lineNumber, bank)
		}
		if row < 0 || row >= 100 {
			return errors.Errorf("%s:%d: expecting ft row 0-99 %d", filename, lineNumber, row)
		}
		if index < 1 || index > 6 {
			return errors.Errorf("%s:%d: expecting ft row index 1-6 %d", filename, lineNumber, index)
		}
		if digit < 0 || digit > 9 {
			return errors.Errorf("%s:%d: expecting ft digit %d", filename, lineNumber, digit)
		}

		// Digits accumulate additively into a fresh row, tens digit at
		// even indexes, so each half word is set by at most two deposits.
		rowIndex := ft*100 + row
		wordIndex := (6 - index) / 2
		if bank == 'B' {
			wordIndex += 3
		}
		shifted := digit
		if index%2 == 0 {
			shifted = 10 * digit
		}
		machine.FunctionTable[rowIndex][wordIndex] += shifted
		if machine.FunctionTable[rowIndex][wordIndex] > 99 {
			return errors.Errorf("%s:%d: ft word overflow at row %d", filename, lineNumber, rowIndex)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading %s", filename)
	}

	for i, neg := range ft3Signs {
		if neg {
			machine.FunctionTable[300+i][0] -= 100
		}
	}
	return nil
}
