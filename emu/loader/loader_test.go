/*
 * chsim - Program file reader test cases.
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

package loader

import (
	"strings"
	"testing"

	"github.com/rcornwell/chsim/emu/vm"
)

func load(t *testing.T, program string) *vm.VM {
	t.Helper()
	v := vm.New()
	if err := readProgram(strings.NewReader(program), "test.e", v); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return v
}

func TestReadProgram(t *testing.T) {
	v := load(t, `# isa=v4
# comment line

s f1.RA0L6 4
s f1.RA0L5 0
s f1.RA0L4 4
s f1.RA0L3 1
s f1.RA0L2 9
s f1.RA0L1 5
s f2.RB42L6 7
s f2.RB42L2 2
s f2.RB42L1 3
`)
	if v.FunctionTable[100] != [6]int{40, 41, 95, 0, 0, 0} {
		t.Errorf("ft 100 got %v", v.FunctionTable[100])
	}
	if v.FunctionTable[242] != [6]int{0, 0, 0, 70, 0, 23} {
		t.Errorf("ft 242 got %v", v.FunctionTable[242])
	}
}

// Deposits accumulate tens and ones digits into the same word.
func TestReadProgramAccumulates(t *testing.T) {
	v := load(t, `# isa=v4
s f3.RA8L6 9
s f3.RA8L5 5
`)
	if v.FunctionTable[308][0] != 95 {
		t.Errorf("ft 308 got %d want 95", v.FunctionTable[308][0])
	}
}

// An M sign directive offsets word 0 of the table 3 row after ingest.
func TestReadProgramSign(t *testing.T) {
	v := load(t, `# isa=v4
s f3.RA8L6 9
s f3.RA8L5 9
s f3.RB8S M
s f3.RB9S P
s f3.RA9L5 1
`)
	if v.FunctionTable[308][0] != -1 {
		t.Errorf("ft 308 got %d want -1", v.FunctionTable[308][0])
	}
	if v.FunctionTable[309][0] != 1 {
		t.Errorf("ft 309 got %d want 1", v.FunctionTable[309][0])
	}
}

func TestReadProgramErrors(t *testing.T) {
	tests := []struct {
		name, program string
	}{
		{"missing header", "s f1.RA0L1 5\n"},
		{"wrong header", "# isa=v3\n"},
		{"bad directive", "# isa=v4\nnonsense\n"},
		{"ft out of range", "# isa=v4\ns f4.RA0L1 5\n"},
		{"bad bank", "# isa=v4\ns f1.RC0L1 5\n"},
		{"row out of range", "# isa=v4\ns f1.RA100L1 5\n"},
		{"index out of range", "# isa=v4\ns f1.RA0L7 5\n"},
		{"bad sign row", "# isa=v4\ns f3.RB100S M\n"},
		{"overflow", "# isa=v4\ns f1.RA0L6 9\ns f1.RA0L6 9\n"},
	}
	for _, test := range tests {
		v := vm.New()
		if err := readProgram(strings.NewReader(test.program), "test.e", v); err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}

func TestReadProgramMissingFile(t *testing.T) {
	if err := ReadProgram("no-such-file.e", vm.New()); err == nil {
		t.Error("expected error")
	}
}
