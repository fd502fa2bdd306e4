/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package golden

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/loxlang/tlox/pkg/nativelib"
	"github.com/loxlang/tlox/pkg/vm"
)

// Failure describes a single expectation that a Step did not meet. It is
// returned by RunStep, and RunCase passes on the one from the first failing
// step.
type Failure struct {
	Case    string
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Case, f.Message)
}

// RunStep compiles and runs a single Step's source against a fresh VM (spec
// §5's "one VM per process" relaxed to "one VM per step", same as the
// teacher's per-step romutil.MemoryMouth/FatefulEar pair) and checks the
// result against the step's expectations. dir is the case file's directory,
// used to resolve a relative SourceFile.
func RunStep(caseName, dir string, st Step) error {
	source, err := st.source(dir)
	if err != nil {
		return &Failure{caseName, fmt.Sprintf("reading source: %v", err)}
	}

	var out bytes.Buffer
	ear := nativelib.NewFixedEar(st.Input...)
	runErr := vm.Run(source, &out, false, false, func(theVM *vm.VM) {
		nativelib.RegisterAll(theVM, ear)
	})

	gotExitCode := 0
	if runErr != nil {
		gotExitCode = runErr.ExitCode()
	}
	if gotExitCode != st.ExitCode {
		return &Failure{caseName, fmt.Sprintf("expected exit code %d, got %d", st.ExitCode, gotExitCode)}
	}

	for _, pattern := range st.ErrorMessages {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return &Failure{caseName, fmt.Sprintf("compiling expected-error regexp %q: %v", pattern, err)}
		}
		errText := ""
		if runErr != nil {
			errText = runErr.Error()
		}
		if !re.MatchString(errText) {
			return &Failure{caseName, fmt.Sprintf("expected error message matching %q, got %q", pattern, errText)}
		}
	}

	if runErr != nil {
		// An expected failure: output isn't meaningful past this point.
		return nil
	}

	gotOutput := splitOutputLines(out.String())
	if len(gotOutput) != len(st.Output) {
		return &Failure{caseName, fmt.Sprintf("expected %d output lines %v, got %d %v", len(st.Output), st.Output, len(gotOutput), gotOutput)}
	}
	for i, want := range st.Output {
		if gotOutput[i] != want {
			return &Failure{caseName, fmt.Sprintf("at output line %d: expected %q, got %q", i, want, gotOutput[i])}
		}
	}

	return nil
}

// splitOutputLines splits `print`'s newline-terminated output into the
// individual lines it printed, mirroring the teacher's Mouth.Outputs (one
// entry per write) without needing a Mouth abstraction of our own.
func splitOutputLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// RunCase loads the case descriptor at path and runs every step in order,
// returning the first failure encountered (if any).
func RunCase(path string) error {
	c, err := loadCase(path)
	if err != nil {
		return &Failure{path, fmt.Sprintf("loading case: %v", err)}
	}

	dir := filepath.Dir(path)
	for _, st := range c.Steps {
		if err := RunStep(path, dir, st); err != nil {
			return err
		}
	}
	return nil
}
