/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package golden implements tlox's TOML-driven end-to-end scenario runner,
// generalizing stackedboxes-romualdo's pkg/test (itself grounded on its
// test.toml descriptor format) to spec §8's "End-to-end scenarios" and
// "Boundary behaviors": each case compiles and runs a tlox program and
// checks its stdout, exit code, and/or error message against what the TOML
// file declares.
package golden

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Case mirrors a single golden-test TOML file. Fields set at the top level
// are defaults for every Step; a file with no explicit [[step]] table gets
// one implicit step built from those top-level fields -- the same
// canonicalization the teacher's pkg/test performs.
type Case struct {
	Source        string
	SourceFile    string `toml:"source_file"`
	Input         []string
	Output        []string
	ExitCode      int `toml:"exit_code"`
	ErrorMessages []string `toml:"error_messages"`

	Steps []Step `toml:"step"`
}

// Step is one compile-and-run within a Case. Most cases have exactly one,
// built implicitly from the Case's top-level fields; a case can also list
// several steps to exercise a short sequence of independent programs (e.g.
// a const-violation case paired with a clean run) in one file.
type Step struct {
	Source        string
	SourceFile    string `toml:"source_file"`
	Input         []string
	Output        []string
	ExitCode      int `toml:"exit_code"`
	ErrorMessages []string `toml:"error_messages"`
}

// loadCase reads and canonicalizes the case descriptor at path.
func loadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Case{}
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	canonicalize(c)
	return c, nil
}

// canonicalize makes sure c has at least one Step, synthesizing it from the
// top-level fields when the file declared none.
func canonicalize(c *Case) {
	if len(c.Steps) == 0 {
		c.Steps = []Step{{
			Source:        c.Source,
			SourceFile:    c.SourceFile,
			Input:         c.Input,
			Output:        c.Output,
			ExitCode:      c.ExitCode,
			ErrorMessages: c.ErrorMessages,
		}}
	}
}

// source returns the step's tlox source, reading SourceFile (resolved
// relative to dir) when Source itself is empty.
func (s Step) source(dir string) (string, error) {
	if s.Source != "" {
		return s.Source, nil
	}
	data, err := os.ReadFile(filepath.Join(dir, s.SourceFile))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
