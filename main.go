/*
 * chsim - Main process.
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

// chsim simulates ISA v4 programs for the ENIAC chess VM. Without -t it
// drops into an interactive console; with -t it runs the program for a
// cycle budget and exits 0 if the program halted on its own.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	reader "github.com/rcornwell/chsim/command/reader"
	config "github.com/rcornwell/chsim/config/configparser"
	loader "github.com/rcornwell/chsim/emu/loader"
	machine "github.com/rcornwell/chsim/emu/machine"
	vm "github.com/rcornwell/chsim/emu/vm"
	logger "github.com/rcornwell/chsim/util/logger"
)

func main() {
	optDeck := getopt.StringLong("deck", 'f', "", "Card deck file")
	optTest := getopt.Int64Long("test", 't', 0, "Run for N cycles, exit 0 on halt")
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug output to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("program.e")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) != 1 {
		getopt.Usage()
		os.Exit(1)
	}

	cfg := config.New()
	if *optConfig != "" {
		var err error
		cfg, err = config.Load(*optConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	// Command line options win over the config file.
	if *optDeck != "" {
		cfg.Deck = *optDeck
	}
	if *optLogFile != "" {
		cfg.LogFile = *optLogFile
	}

	var logFile *os.File
	if cfg.LogFile != "" {
		logFile, _ = os.Create(cfg.LogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	log := slog.New(logger.NewHandler(logFile, &slog.HandlerOptions{Level: programLevel}, *optDebug))
	slog.SetDefault(log)
	slog.Info("chsim started")

	machineVM := vm.New()
	if err := loader.ReadProgram(args[0], machineVM); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Tee print output to a file alongside stdout.
	printers := []io.Writer{os.Stdout}
	if out, err := os.Create(cfg.Output); err == nil {
		defer out.Close()
		printers = append(printers, out)
	} else {
		slog.Warn("cannot tee output: " + err.Error())
	}
	mach := machine.New(machineVM, io.MultiWriter(printers...))

	// Open deck file if specified, otherwise read from stdin.
	if cfg.Deck != "" {
		deck, err := os.Open(cfg.Deck)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open deck file %s\n", cfg.Deck)
			os.Exit(1)
		}
		defer deck.Close()
		mach.SetDeck(deck, false)
	}

	// Non-interactive mode for unit tests: run for a fixed number of
	// cycles or until halt/brk.
	if *optTest > 0 {
		mach.RunCycles(uint64(*optTest))
		if mach.Halted() {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Interactive mode. ^C stops a running program, not the console.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT)
	go func() {
		for range sigChan {
			mach.Interrupt()
		}
	}()

	reader.ConsoleReader(mach)
}
