/*
 * chsim - Checkpoint transfer test cases.
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

import (
	"testing"

	"github.com/rcornwell/chsim/emu/eniac"
)

func setAcc(e *eniac.State, i int, s string) {
	copy(e.Acc[i][:], s)
}

func TestImport(t *testing.T) {
	e := &eniac.State{Cycles: 1024}
	setAcc(e, 0, "P0099429020")
	setAcc(e, 1, "M0000000000")
	setAcc(e, 2, "P0000000000")
	setAcc(e, 3, "P0102030405")
	setAcc(e, 12, "M9907080910")
	setAcc(e, 19, "P9596979899")
	e.FT[0][2] = [14]int{0, 9, 2, 5, 2, 9, 2, 5, 2, 0, 1, 5, 2, 0}
	e.FT[2][10] = [14]int{0, 9, 9, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6, 1}

	v := New()
	v.Cycles = 1000
	v.Status = IOREAD
	if err := v.Import(e); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if v.Cycles != 1024 {
		t.Errorf("cycles got %d want 1024", v.Cycles)
	}
	if v.Status != 0 || v.Error != 0 {
		t.Errorf("status %#x error %#x", v.Status, v.Error)
	}
	if v.OldPC != 342 || v.PC != 220 || v.IRIndex != 6 {
		t.Errorf("got old=%d pc=%d ir=%d", v.OldPC, v.PC, v.IRIndex)
	}
	if v.A != -1 || v.B != 7 || v.C != 8 || v.D != 9 || v.E != 10 {
		t.Errorf("rf got %d %d %d %d %d", v.A, v.B, v.C, v.D, v.E)
	}
	if v.F != 1 || v.G != 2 || v.H != 3 || v.I != 4 || v.J != 5 {
		t.Errorf("ls got %d %d %d %d %d", v.F, v.G, v.H, v.I, v.J)
	}
	if v.Mem[14] != [5]int{95, 96, 97, 98, 99} {
		t.Errorf("mem 14 got %v", v.Mem[14])
	}
	if !v.FTInitialized {
		t.Fatal("function table not ingested")
	}
	if v.FunctionTable[100] != [6]int{92, 52, 92, 52, 1, 52} {
		t.Errorf("ft 100 got %v", v.FunctionTable[100])
	}
	if v.FunctionTable[308] != [6]int{-1, 2, 3, 4, 5, 6} {
		t.Errorf("ft 308 got %v", v.FunctionTable[308])
	}
}

func TestImportBadBank(t *testing.T) {
	e := &eniac.State{}
	setAcc(e, 0, "P0000005520")
	v := New()
	if err := v.Import(e); err == nil {
		t.Error("expected error for bad pc bank")
	}
}

// An unset return address imports as zero.
func TestImportUnsetReturn(t *testing.T) {
	e := &eniac.State{}
	setAcc(e, 0, "P0000000920")
	v := New()
	v.OldPC = 342
	if err := v.Import(e); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if v.OldPC != 0 {
		t.Errorf("old pc got %d want 0", v.OldPC)
	}
	if v.PC != 120 {
		t.Errorf("pc got %d want 120", v.PC)
	}
}

// The function table is ROM after the first import.
func TestImportIngestsFunctionTableOnce(t *testing.T) {
	e := &eniac.State{}
	setAcc(e, 0, "P0000000920")
	e.FT[0][2][1] = 4
	e.FT[0][2][2] = 2
	v := New()
	for i := range e.Acc {
		if e.Acc[i][0] == 0 {
			setAcc(e, i, "P0000000000")
		}
	}
	if err := v.Import(e); err != nil {
		t.Fatal(err)
	}
	if v.FunctionTable[100][0] != 42 {
		t.Fatalf("ft 100 got %d want 42", v.FunctionTable[100][0])
	}
	e.FT[0][2][1] = 9
	if err := v.Import(e); err != nil {
		t.Fatal(err)
	}
	if v.FunctionTable[100][0] != 42 {
		t.Errorf("ft changed on second import: %d", v.FunctionTable[100][0])
	}
}

func TestExport(t *testing.T) {
	v := New()
	v.Cycles = 1000
	v.Status = IOREAD
	v.PC = 220
	v.OldPC = 342
	v.A, v.B, v.C, v.D, v.E = -1, 7, 8, 9, 10
	v.F, v.G, v.H, v.I, v.J = 1, 2, 3, 4, 5
	v.Mem[14] = [5]int{95, 96, 97, 98, 99}

	e := &eniac.State{}
	setAcc(e, 1, "xxxxxxxxxxx")
	setAcc(e, 2, "xxxxxxxxxxx")
	v.Export(e)

	if e.Cycles != 1000 || e.ErrorCode != 0 {
		t.Errorf("cycles %d error %d", e.Cycles, e.ErrorCode)
	}
	if !e.Rollback {
		t.Error("expected rollback for pending status")
	}
	tests := []struct {
		acc  int
		want string
	}{
		{0, "P0099429020"},
		{1, "xxxxxxxxxxx"},
		{2, "xxxxxxxxxxx"},
		{3, "P0102030405"},
		{12, "M9907080910"},
		// Stays P until a control transfer refreshes the bank mirrors.
		{19, "P9596979899"},
	}
	for _, test := range tests {
		if got := string(e.Acc[test.acc][:]); got != test.want {
			t.Errorf("acc %d got %q want %q", test.acc, got, test.want)
		}
	}
}

// Import then export with no step in between hands back the accumulators
// untouched.
func TestImportExportRoundTrip(t *testing.T) {
	e := &eniac.State{Cycles: 5000}
	setAcc(e, 0, "P0099429020")
	for i := 1; i < 20; i++ {
		setAcc(e, i, "P0000000000")
	}
	setAcc(e, 3, "M0102030405")
	setAcc(e, 12, "P4243444546")
	setAcc(e, 4, "M9900000001")
	setAcc(e, 18, "P1112131415")

	v := New()
	if err := v.Import(e); err != nil {
		t.Fatal(err)
	}
	out := &eniac.State{}
	v.Export(out)

	if out.Cycles != 5000 {
		t.Errorf("cycles got %d", out.Cycles)
	}
	if out.Rollback {
		t.Error("unexpected rollback")
	}
	for _, i := range []int{0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19} {
		if out.Acc[i] != e.Acc[i] {
			t.Errorf("acc %d got %q want %q", i, out.Acc[i][:], e.Acc[i][:])
		}
	}
}
