/*
 * chsim - Console command parser.
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

// Package parser executes console commands against a machine. Commands may
// be abbreviated down to their minimum match length.
package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rcornwell/chsim/config/configparser"
	"github.com/rcornwell/chsim/emu/disassemble"
	"github.com/rcornwell/chsim/emu/machine"
	"github.com/rcornwell/chsim/emu/vm"
)

type cmd struct {
	name    string // Command name.
	min     int    // Minimum match size.
	help    string // One line description.
	process func(*cmdLine, *machine.Machine) (bool, error)
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

var cmdList []cmd

func init() {
	cmdList = []cmd{
		{name: "help", min: 1, help: "print help", process: help},
		{name: "quit", min: 1, help: "quit", process: quit},
		{name: "registers", min: 1, help: "print vm registers", process: registers},
		{name: "memory", min: 1, help: "print vm memory (linear addresses)", process: memory},
		{name: "memacc", min: 2, help: "print vm memory (accumulators)", process: memacc},
		{name: "profile", min: 1, help: "write execution profile [file]", process: profile},
		{name: "go", min: 1, help: "run (until break, halt or ^C)", process: run},
		{name: "next", min: 1, help: "step one instruction and print", process: next},
	}
}

// ProcessCommand executes the command line given. The returned flag is true
// when the console should exit.
func ProcessCommand(commandLine string, mach *machine.Machine) (bool, error) {
	line := cmdLine{line: commandLine}
	command := line.getWord()
	if command == "" {
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}
	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}
	return match[0].process(&line, mach)
}

// CompleteCmd is called to complete a command name during line editing.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	matches := []string{}
	for _, m := range matchList(name) {
		matches = append(matches, m.name)
	}
	return matches
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.name) || len(command) < match.min {
		return false
	}
	return strings.HasPrefix(match.name, command)
}

func matchList(command string) []cmd {
	matches := []cmd{}
	for _, c := range cmdList {
		if matchCommand(c, command) {
			matches = append(matches, c)
		}
	}
	return matches
}

// getWord collects the next space delimited word of the command line.
func (line *cmdLine) getWord() string {
	for line.pos < len(line.line) && line.line[line.pos] == ' ' {
		line.pos++
	}
	start := line.pos
	for line.pos < len(line.line) && line.line[line.pos] != ' ' {
		line.pos++
	}
	return line.line[start:line.pos]
}

func help(_ *cmdLine, _ *machine.Machine) (bool, error) {
	fmt.Println("supported commands:")
	for _, c := range cmdList {
		fmt.Printf("%-10s - %s\n", c.name, c.help)
	}
	return false, nil
}

func quit(_ *cmdLine, _ *machine.Machine) (bool, error) {
	return true, nil
}

func registers(_ *cmdLine, mach *machine.Machine) (bool, error) {
	dumpRegs(mach.VM)
	return false, nil
}

func memory(_ *cmdLine, mach *machine.Machine) (bool, error) {
	dumpMemory(mach.VM)
	return false, nil
}

func memacc(_ *cmdLine, mach *machine.Machine) (bool, error) {
	dumpMemoryAccs(mach.VM)
	return false, nil
}

// profile writes the execution profile to the named or default file.
func profile(line *cmdLine, mach *machine.Machine) (bool, error) {
	filename := line.getWord()
	if filename == "" {
		filename = configparser.DefaultProfile
	}
	fp, err := os.Create(filename)
	if err != nil {
		return false, err
	}
	defer fp.Close()
	mach.WriteProfile(fp)
	fmt.Printf("wrote profile to %s\n", filename)
	return false, nil
}

// run resumes the program until it stops or the user interrupts.
func run(_ *cmdLine, mach *machine.Machine) (bool, error) {
	mach.Run()
	dumpRegs(mach.VM)
	dis, _ := disassemble.Disassemble(*mach.VM)
	dumpCurrentInstruction(mach.VM, dis)
	return false, nil
}

// next steps a single instruction, sliding over sled padding.
func next(_ *cmdLine, mach *machine.Machine) (bool, error) {
	mach.VM.Status &^= vm.BREAK
	skip := true
	for skip {
		var dis string
		dis, skip = disassemble.Disassemble(*mach.VM)
		if !skip {
			dumpRegs(mach.VM)
			dumpCurrentInstruction(mach.VM, dis)
		}
		mach.Step()
	}
	return false, nil
}
