/*
 * chsim - Configuration file parser.
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

// Package configparser reads the optional chsim configuration file, so a
// program can be bundled with the deck and output paths it expects.
//
/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := 'deck' <value> |
 *           'output' <value> |
 *           'profile' <value> |
 *           'logfile' <value>
 * <value> ::= <string> | '"' *(<letter> | <whitespace>) '"'
 */
package configparser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Defaults used when neither the config file nor the command line names a
// path.
const (
	DefaultOutput  = "/tmp/chsim.out"
	DefaultProfile = "/tmp/chsim.prof"
)

// Config holds the machine file bindings.
type Config struct {
	Deck    string // Card deck read by the read opcode.
	Output  string // File print output is teed to.
	Profile string // Profile path; the console profile command does not read it.
	LogFile string // Log file.
}

// New returns a config with the default file bindings.
func New() *Config {
	return &Config{Output: DefaultOutput, Profile: DefaultProfile}
}

// Load reads a configuration file.
func Load(filename string) (*Config, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return parse(fp, filename)
}

func parse(r io.Reader, filename string) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		keyword, rest, _ := strings.Cut(line, " ")
		value, err := getValue(rest)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lineNumber, err)
		}
		switch strings.ToLower(keyword) {
		case "deck":
			cfg.Deck = value
		case "output":
			cfg.Output = value
		case "profile":
			cfg.Profile = value
		case "logfile":
			cfg.LogFile = value
		default:
			return nil, fmt.Errorf("%s:%d: unknown keyword %s", filename, lineNumber, keyword)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getValue strips optional quotes from a keyword argument.
func getValue(rest string) (string, error) {
	value := strings.TrimSpace(rest)
	if value == "" {
		return "", fmt.Errorf("missing value")
	}
	if value[0] == '"' {
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", fmt.Errorf("unterminated quote")
		}
		value = value[1 : len(value)-1]
	}
	return value, nil
}
