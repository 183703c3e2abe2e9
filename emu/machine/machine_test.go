/*
 * chsim - Run harness test cases.
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
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rcornwell/chsim/emu/vm"
)

func TestStepServicesRead(t *testing.T) {
	v := vm.New()
	v.H = 7
	v.FunctionTable[100] = [6]int{91, 95, 0, 0, 0, 0}
	m := New(v, &bytes.Buffer{})
	m.SetDeck(strings.NewReader("12345\n"), false)
	m.Step()
	if v.F != 12 || v.G != 34 {
		t.Errorf("got F=%d G=%d", v.F, v.G)
	}
	// The read supplies only the tens digit of H.
	if v.H != 57 {
		t.Errorf("H got %d want 57", v.H)
	}
	if v.Status&vm.IOREAD != 0 {
		t.Error("read bit not cleared")
	}
}

func TestStepReadTokens(t *testing.T) {
	v := vm.New()
	v.FunctionTable[100] = [6]int{91, 91, 95, 0, 0, 0}
	m := New(v, &bytes.Buffer{})
	m.SetDeck(strings.NewReader("12345 00998\n"), false)
	m.Step()
	m.Step()
	if v.F != 0 || v.G != 99 || v.H != 80 {
		t.Errorf("got F=%d G=%d H=%d", v.F, v.G, v.H)
	}
}

func TestStepInvalidReadHalts(t *testing.T) {
	for _, deck := range []string{"", "12x45\n", "1234\n", "123456\n"} {
		v := vm.New()
		v.FunctionTable[100] = [6]int{91, 95, 0, 0, 0, 0}
		m := New(v, &bytes.Buffer{})
		m.SetDeck(strings.NewReader(deck), false)
		m.Step()
		if v.Status&vm.HALT == 0 {
			t.Errorf("deck %q: expected halt", deck)
		}
	}
}

func TestStepServicesPrint(t *testing.T) {
	v := vm.New()
	v.A, v.B = -1, 7
	v.FunctionTable[100] = [6]int{92, 95, 0, 0, 0, 0}
	out := &bytes.Buffer{}
	m := New(v, out)
	m.Step()
	if got := out.String(); got != "9907\n" {
		t.Errorf("print got %q want %q", got, "9907\n")
	}
	if v.Status&vm.IOPRINT != 0 {
		t.Error("print bit not cleared")
	}
}

func TestRunCyclesStopsOnHalt(t *testing.T) {
	v := vm.New()
	v.FunctionTable[100] = [6]int{52, 95, 0, 0, 0, 0}
	m := New(v, &bytes.Buffer{})
	m.RunCycles(1000)
	if !m.Halted() {
		t.Error("expected halt")
	}
	if v.A != 1 {
		t.Errorf("A got %d want 1", v.A)
	}
}

func TestRunCyclesStopsOnBudget(t *testing.T) {
	v := vm.New()
	// Incs followed by a jump back to the start of the row: the 99
	// operand increments to 00 and targets address 100.
	v.FunctionTable[100] = [6]int{52, 52, 52, 73, 99, 0}
	m := New(v, &bytes.Buffer{})
	m.RunCycles(100)
	if m.Halted() {
		t.Error("unexpected halt")
	}
	if v.Cycles < 100 {
		t.Errorf("stopped early at %d cycles", v.Cycles)
	}
}

func TestRunStopsOnInterrupt(t *testing.T) {
	v := vm.New()
	v.FunctionTable[100] = [6]int{52, 52, 52, 73, 99, 0}
	m := New(v, &bytes.Buffer{})
	go func() {
		time.Sleep(10 * time.Millisecond)
		m.Interrupt()
	}()
	m.Run()
	if v.Cycles == 0 {
		t.Error("did not run")
	}
	if m.Halted() {
		t.Error("unexpected halt")
	}
}

func TestWriteProfile(t *testing.T) {
	v := vm.New()
	v.FunctionTable[100] = [6]int{40, 41, 95, 0, 0, 0}
	m := New(v, &bytes.Buffer{})
	m.RunCycles(1000)

	out := &bytes.Buffer{}
	m.WriteProfile(out)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "100/0  mov 42,A") {
		t.Errorf("line 0 got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "100/1  halt") {
		t.Errorf("line 1 got %q", lines[1])
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, "; 1") {
			t.Errorf("count missing in %q", line)
		}
	}
}
